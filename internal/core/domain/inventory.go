package domain

type InventorySummary struct {
	Total      int64
	Available  int64
	CheckedOut int64
}

// NewInventorySummary derives CheckedOut so that Total == Available + CheckedOut always holds.
func NewInventorySummary(total, available int64) InventorySummary {
	return InventorySummary{
		Total:      total,
		Available:  available,
		CheckedOut: total - available,
	}
}
