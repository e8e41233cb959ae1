package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/book-lending/internal/core/domain"
)

const (
	bookKeyPrefix     = "book:"
	bookIDsKey        = "books"
	totalCounterKey   = "books:total"
	availableCountKey = "books:available"

	flagAvailable  = "1"
	flagCheckedOut = "0"
)

// Each copy is a hash. The id set and the two counters are maintained inside
// the same scripts that mutate copies, so MGET of the counters is a consistent summary.
var createBookScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end

redis.call('HSET', KEYS[1],
	'id', ARGV[1], 'title', ARGV[2], 'author', ARGV[3],
	'genre', ARGV[4], 'condition', ARGV[5], 'available', '1')
redis.call('SADD', KEYS[2], ARGV[1])
redis.call('INCR', KEYS[3])
redis.call('INCR', KEYS[4])
return 1
`)

var updateBookScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end

redis.call('HSET', KEYS[1],
	'title', ARGV[1], 'author', ARGV[2], 'genre', ARGV[3], 'condition', ARGV[4])
return 1
`)

var deleteBookScript = redis.NewScript(`
local available = redis.call('HGET', KEYS[1], 'available')
if not available then
	return 0
end

redis.call('DEL', KEYS[1])
redis.call('SREM', KEYS[2], ARGV[1])
redis.call('DECR', KEYS[3])
if available == '1' then
	redis.call('DECR', KEYS[4])
end
return 1
`)

var transitionScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'available') ~= ARGV[1] then
	return 0
end

redis.call('HSET', KEYS[1], 'available', ARGV[2])
redis.call('INCRBY', KEYS[2], tonumber(ARGV[3]))
return 1
`)

type RedisAdapter struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

func NewRedisAdapter(client *redis.Client, keyPrefix string, timeout time.Duration) *RedisAdapter {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &RedisAdapter{client: client, prefix: keyPrefix, timeout: timeout}
}

func (r *RedisAdapter) Get(ctx context.Context, id string) (domain.BookCopy, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	fields, err := r.client.HGetAll(ctx, r.bookKey(id)).Result()
	if err != nil {
		return domain.BookCopy{}, domain.NewStorageError("get book", err)
	}
	if len(fields) == 0 {
		return domain.BookCopy{}, domain.NewNotFoundError(id)
	}
	return decodeBook(fields), nil
}

func (r *RedisAdapter) Create(ctx context.Context, book domain.BookCopy) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	keys := []string{r.bookKey(book.ID), r.key(bookIDsKey), r.key(totalCounterKey), r.key(availableCountKey)}
	created, err := createBookScript.Run(ctx, r.client, keys,
		book.ID, book.Title, book.Author, book.Genre, book.Condition).Int()
	if err != nil {
		return "", domain.NewStorageError("create book", err)
	}
	if created == 0 {
		return "", fmt.Errorf("%w: id=%s", domain.ErrDuplicateID, book.ID)
	}
	return book.ID, nil
}

func (r *RedisAdapter) Update(ctx context.Context, book domain.BookCopy) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	updated, err := updateBookScript.Run(ctx, r.client, []string{r.bookKey(book.ID)},
		book.Title, book.Author, book.Genre, book.Condition).Int()
	if err != nil {
		return false, domain.NewStorageError("update book", err)
	}
	return updated == 1, nil
}

func (r *RedisAdapter) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	keys := []string{r.bookKey(id), r.key(bookIDsKey), r.key(totalCounterKey), r.key(availableCountKey)}
	deleted, err := deleteBookScript.Run(ctx, r.client, keys, id).Int()
	if err != nil {
		return false, domain.NewStorageError("delete book", err)
	}
	return deleted == 1, nil
}

func (r *RedisAdapter) ListAll(ctx context.Context) ([]domain.BookCopy, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	ids, err := r.client.SMembers(ctx, r.key(bookIDsKey)).Result()
	if err != nil {
		return nil, domain.NewStorageError("list book ids", err)
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, r.bookKey(id))
	}
	if len(ids) > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, domain.NewStorageError("list books", err)
		}
	}

	books := make([]domain.BookCopy, 0, len(ids))
	for _, cmd := range cmds {
		fields := cmd.Val()
		// deleted between SMEMBERS and HGETALL
		if len(fields) == 0 {
			continue
		}
		books = append(books, decodeBook(fields))
	}
	sortBooks(books)
	return books, nil
}

func (r *RedisAdapter) Checkout(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, "checkout book", id, flagAvailable, flagCheckedOut, -1)
}

func (r *RedisAdapter) Checkin(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, "checkin book", id, flagCheckedOut, flagAvailable, 1)
}

func (r *RedisAdapter) Search(ctx context.Context, field domain.SearchField, term string) ([]domain.BookCopy, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: unknown search field %q", domain.ErrValidation, field)
	}

	books, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := books[:0]
	for _, b := range books {
		if field.Matches(b, term) {
			matches = append(matches, b)
		}
	}
	return matches, nil
}

func (r *RedisAdapter) Summary(ctx context.Context) (domain.InventorySummary, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	vals, err := r.client.MGet(ctx, r.key(totalCounterKey), r.key(availableCountKey)).Result()
	if err != nil {
		return domain.InventorySummary{}, domain.NewStorageError("read counters", err)
	}

	total, err := parseCounter(vals[0])
	if err != nil {
		return domain.InventorySummary{}, domain.NewStorageError("parse total counter", err)
	}
	available, err := parseCounter(vals[1])
	if err != nil {
		return domain.InventorySummary{}, domain.NewStorageError("parse available counter", err)
	}
	return domain.NewInventorySummary(total, available), nil
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := r.client.Ping(ctx).Err(); err != nil {
		return domain.NewStorageError("ping", err)
	}
	return nil
}

func (r *RedisAdapter) transition(ctx context.Context, op, id, from, to string, delta int) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	keys := []string{r.bookKey(id), r.key(availableCountKey)}
	changed, err := transitionScript.Run(ctx, r.client, keys, from, to, delta).Int()
	if err != nil {
		return false, domain.NewStorageError(op, err)
	}
	return changed == 1, nil
}

func (r *RedisAdapter) key(name string) string {
	return r.prefix + name
}

func (r *RedisAdapter) bookKey(id string) string {
	return r.prefix + bookKeyPrefix + id
}

func decodeBook(fields map[string]string) domain.BookCopy {
	return domain.BookCopy{
		ID:        fields["id"],
		Title:     fields["title"],
		Author:    fields["author"],
		Genre:     fields["genre"],
		Condition: fields["condition"],
		Available: fields["available"] == flagAvailable,
	}
}

func parseCounter(v any) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected counter type %T", v)
	}
	return strconv.ParseInt(s, 10, 64)
}
