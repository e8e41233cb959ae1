package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/rl1809/book-lending/internal/core/domain"
)

//go:embed schema.sql
var schemaSQL string

const (
	bookTable           = "book_copies"
	defaultQueryTimeout = 5 * time.Second

	mysqlErrDuplicateEntry = 1062
)

var (
	dialect     = goqu.Dialect("mysql")
	bookColumns = []any{"id", "title", "author", "genre", "available", "book_condition"}
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

type bookRow struct {
	ID        string `db:"id"`
	Title     string `db:"title"`
	Author    string `db:"author"`
	Genre     string `db:"genre"`
	Available bool   `db:"available"`
	Condition string `db:"book_condition"`
}

func (r bookRow) toDomain() domain.BookCopy {
	return domain.BookCopy{
		ID:        r.ID,
		Title:     r.Title,
		Author:    r.Author,
		Genre:     r.Genre,
		Condition: r.Condition,
		Available: r.Available,
	}
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// OpenMySQL connects and pings. The DSN is rewritten so that UPDATE reports
// matched rows: rewriting a copy with identical metadata must still count as found.
func OpenMySQL(ctx context.Context, cfg MySQLConfig) (*sqlx.DB, error) {
	dsn, err := normalizeDSN(cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}

func normalizeDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ClientFoundRows = true
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

type MySQLAdapter struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewMySQLAdapter(db *sqlx.DB, timeout time.Duration) *MySQLAdapter {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &MySQLAdapter{db: db, timeout: timeout}
}

// Migrate creates the book_copies table if it does not exist.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if _, err := m.db.ExecContext(ctx, schemaSQL); err != nil {
		return domain.NewStorageError("migrate schema", err)
	}
	return nil
}

func (m *MySQLAdapter) Get(ctx context.Context, id string) (domain.BookCopy, error) {
	query, args, err := dialect.From(bookTable).Prepared(true).
		Select(bookColumns...).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return domain.BookCopy{}, domain.NewStorageError("build get query", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var row bookRow
	err = m.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.BookCopy{}, domain.NewNotFoundError(id)
	}
	if err != nil {
		return domain.BookCopy{}, domain.NewStorageError("query book", err)
	}
	return row.toDomain(), nil
}

func (m *MySQLAdapter) Create(ctx context.Context, book domain.BookCopy) (string, error) {
	query, args, err := dialect.Insert(bookTable).Prepared(true).
		Rows(goqu.Record{
			"id":             book.ID,
			"title":          book.Title,
			"author":         book.Author,
			"genre":          book.Genre,
			"available":      true,
			"book_condition": book.Condition,
		}).
		ToSQL()
	if err != nil {
		return "", domain.NewStorageError("build insert query", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if _, err := m.db.ExecContext(ctx, query, args...); err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry {
			return "", fmt.Errorf("%w: id=%s", domain.ErrDuplicateID, book.ID)
		}
		return "", domain.NewStorageError("insert book", err)
	}
	return book.ID, nil
}

func (m *MySQLAdapter) Update(ctx context.Context, book domain.BookCopy) (bool, error) {
	query, args, err := dialect.Update(bookTable).Prepared(true).
		Set(goqu.Record{
			"title":          book.Title,
			"author":         book.Author,
			"genre":          book.Genre,
			"book_condition": book.Condition,
		}).
		Where(goqu.C("id").Eq(book.ID)).
		ToSQL()
	if err != nil {
		return false, domain.NewStorageError("build update query", err)
	}
	return m.exec(ctx, "update book", query, args)
}

func (m *MySQLAdapter) Delete(ctx context.Context, id string) (bool, error) {
	query, args, err := dialect.Delete(bookTable).Prepared(true).
		Where(goqu.C("id").Eq(id)).
		ToSQL()
	if err != nil {
		return false, domain.NewStorageError("build delete query", err)
	}
	return m.exec(ctx, "delete book", query, args)
}

func (m *MySQLAdapter) ListAll(ctx context.Context) ([]domain.BookCopy, error) {
	return m.selectBooks(ctx, "list books", dialect.From(bookTable))
}

// Checkout is a single guarded UPDATE. InnoDB re-evaluates the predicate under
// the row lock, so of two concurrent calls only one can match.
func (m *MySQLAdapter) Checkout(ctx context.Context, id string) (bool, error) {
	return m.transition(ctx, "checkout book", id, true)
}

func (m *MySQLAdapter) Checkin(ctx context.Context, id string) (bool, error) {
	return m.transition(ctx, "checkin book", id, false)
}

func (m *MySQLAdapter) Search(ctx context.Context, field domain.SearchField, term string) ([]domain.BookCopy, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: unknown search field %q", domain.ErrValidation, field)
	}

	// the mysql dialect renders ILike as plain LIKE, which follows the
	// column's case-insensitive collation
	pattern := "%" + likeEscaper.Replace(term) + "%"
	ds := dialect.From(bookTable).Where(goqu.C(string(field)).ILike(pattern))
	return m.selectBooks(ctx, "search books", ds)
}

// Summary reads both counts in one statement, so total always equals
// available plus checked out.
func (m *MySQLAdapter) Summary(ctx context.Context) (domain.InventorySummary, error) {
	query, args, err := dialect.From(bookTable).Prepared(true).
		Select(
			goqu.COUNT(goqu.Star()).As("total"),
			goqu.L("CAST(COALESCE(SUM(available), 0) AS SIGNED)").As("available"),
		).
		ToSQL()
	if err != nil {
		return domain.InventorySummary{}, domain.NewStorageError("build summary query", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var counts struct {
		Total     int64 `db:"total"`
		Available int64 `db:"available"`
	}
	if err := m.db.GetContext(ctx, &counts, query, args...); err != nil {
		return domain.InventorySummary{}, domain.NewStorageError("query summary", err)
	}
	return domain.NewInventorySummary(counts.Total, counts.Available), nil
}

func (m *MySQLAdapter) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.db.PingContext(ctx); err != nil {
		return domain.NewStorageError("ping", err)
	}
	return nil
}

func (m *MySQLAdapter) transition(ctx context.Context, op, id string, from bool) (bool, error) {
	guard := goqu.C("available").IsTrue()
	if !from {
		guard = goqu.C("available").IsFalse()
	}

	query, args, err := dialect.Update(bookTable).Prepared(true).
		Set(goqu.Record{"available": !from}).
		Where(goqu.C("id").Eq(id), guard).
		ToSQL()
	if err != nil {
		return false, domain.NewStorageError("build "+op+" query", err)
	}
	return m.exec(ctx, op, query, args)
}

func (m *MySQLAdapter) selectBooks(ctx context.Context, op string, ds *goqu.SelectDataset) ([]domain.BookCopy, error) {
	query, args, err := ds.Prepared(true).
		Select(bookColumns...).
		Order(goqu.C("title").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, domain.NewStorageError("build "+op+" query", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	var rows []bookRow
	if err := m.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, domain.NewStorageError(op, err)
	}

	books := make([]domain.BookCopy, 0, len(rows))
	for _, r := range rows {
		books = append(books, r.toDomain())
	}
	return books, nil
}

// exec runs a single-row write and reports whether a row matched.
func (m *MySQLAdapter) exec(ctx context.Context, op, query string, args []any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	result, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, domain.NewStorageError(op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, domain.NewStorageError(op, err)
	}
	return rows == 1, nil
}
