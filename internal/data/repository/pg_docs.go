package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"tour-booking/internal/data/entity"
	"tour-booking/pkg/database"
)

const pgUniqueViolation = "23505"

// pgDocs stores documents of type T as JSONB rows:
// (id TEXT PRIMARY KEY, doc JSONB, created_at, updated_at).
type pgDocs[T any] struct {
	db    database.PgxIface
	table string
	log   *zap.Logger
}

func newPgDocs[T any](db database.PgxIface, table string, log *zap.Logger) pgDocs[T] {
	return pgDocs[T]{db: db, table: table, log: log}
}

func pgWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}

func (d pgDocs[T]) insert(ctx context.Context, base entity.Base, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", d.table, err)
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)`, d.table)
	if _, err := d.db.Exec(ctx, query, base.ID.String(), data, base.CreatedAt, base.UpdatedAt); err != nil {
		err = pgWriteErr(err)
		if !errors.Is(err, ErrDuplicate) {
			d.log.Error("Failed to insert document", zap.Error(err), zap.String("id", base.ID.String()))
		}
		return err
	}
	return nil
}

func (d pgDocs[T]) replace(ctx context.Context, base entity.Base, doc *T) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal %s document: %w", d.table, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = $2, updated_at = $3 WHERE id = $1`, d.table)
	result, err := d.db.Exec(ctx, query, base.ID.String(), data, base.UpdatedAt)
	if err != nil {
		err = pgWriteErr(err)
		if !errors.Is(err, ErrDuplicate) {
			d.log.Error("Failed to replace document", zap.Error(err), zap.String("id", base.ID.String()))
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (d pgDocs[T]) delete(ctx context.Context, id entity.ID) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, d.table)
	result, err := d.db.Exec(ctx, query, id.String())
	if err != nil {
		d.log.Error("Failed to delete document", zap.Error(err), zap.String("id", id.String()))
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// findOne returns (nil, nil) when no row matches.
func (d pgDocs[T]) findOne(ctx context.Context, where pgWhere) (*T, error) {
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE %s LIMIT 1`, d.table, where.sql())

	var data []byte
	err := d.db.QueryRow(ctx, query, where.args...).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		d.log.Error("Failed to find document", zap.Error(err), zap.String("where", where.sql()))
		return nil, err
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %s document: %w", d.table, err)
	}
	return &doc, nil
}

func (d pgDocs[T]) findByID(ctx context.Context, id entity.ID) (*T, error) {
	var where pgWhere
	where.column("id", id.String())
	return d.findOne(ctx, where)
}

// list returns rows matching where in orderBy order, windowed by page.
// A zero page.Limit means no limit.
func (d pgDocs[T]) list(ctx context.Context, where pgWhere, orderBy string, page Page) ([]*T, error) {
	var qb strings.Builder
	qb.WriteString(fmt.Sprintf(`SELECT doc FROM %s WHERE %s ORDER BY %s`, d.table, where.sql(), orderBy))

	args := append([]any{}, where.args...)
	if page.Limit > 0 {
		qb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2))
		args = append(args, page.Limit, page.Offset)
	}

	rows, err := d.db.Query(ctx, qb.String(), args...)
	if err != nil {
		d.log.Error("Failed to list documents", zap.Error(err), zap.String("where", where.sql()))
		return nil, err
	}
	defer rows.Close()

	docs := make([]*T, 0, page.Limit)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", d.table, err)
		}
		var doc T
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal %s document: %w", d.table, err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", d.table, err)
	}
	return docs, nil
}

func (d pgDocs[T]) count(ctx context.Context, where pgWhere) (int64, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, d.table, where.sql())

	var total int64
	if err := d.db.QueryRow(ctx, query, where.args...).Scan(&total); err != nil {
		d.log.Error("Failed to count documents", zap.Error(err), zap.String("where", where.sql()))
		return 0, err
	}
	return total, nil
}

// update runs fn on the locked document inside a transaction and writes the
// result back. fn must not retain doc.
func (d pgDocs[T]) update(ctx context.Context, id entity.ID, fn func(doc *T) (updatedAt time.Time)) (*T, error) {
	tx, err := d.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var data []byte
	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1 FOR UPDATE`, d.table)
	err = tx.QueryRow(ctx, query, id.String()).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s row: %w", d.table, err)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal %s document: %w", d.table, err)
	}

	updatedAt := fn(&doc)

	if data, err = json.Marshal(&doc); err != nil {
		return nil, fmt.Errorf("marshal %s document: %w", d.table, err)
	}
	query = fmt.Sprintf(`UPDATE %s SET doc = $2, updated_at = $3 WHERE id = $1`, d.table)
	if _, err := tx.Exec(ctx, query, id.String(), data, updatedAt); err != nil {
		return nil, fmt.Errorf("write %s row: %w", d.table, pgWriteErr(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &doc, nil
}

// pgWhere builds an AND-ed condition list with positional arguments.
type pgWhere struct {
	conds []string
	args  []any
}

func (w *pgWhere) next() string {
	return fmt.Sprintf("$%d", len(w.args))
}

// column matches a real column.
func (w *pgWhere) column(name string, value any) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("%s = %s", name, w.next()))
}

// field matches a top-level document field by its text value.
func (w *pgWhere) field(name, value string) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("doc->>'%s' = %s", name, w.next()))
}

// contains matches an element of a top-level string array field.
func (w *pgWhere) contains(name, value string) {
	w.args = append(w.args, value)
	w.conds = append(w.conds, fmt.Sprintf("doc->'%s' ? %s", name, w.next()))
}

// search ORs a case-insensitive substring match of term over fields.
func (w *pgWhere) search(term string, fields ...string) {
	w.args = append(w.args, "%"+escapeLike(term)+"%")
	placeholder := w.next()

	or := make([]string, 0, len(fields))
	for _, f := range fields {
		or = append(or, fmt.Sprintf("doc->>'%s' ILIKE %s", f, placeholder))
	}
	w.conds = append(w.conds, "("+strings.Join(or, " OR ")+")")
}

func (w pgWhere) sql() string {
	if len(w.conds) == 0 {
		return "TRUE"
	}
	return strings.Join(w.conds, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

const pgNewestFirst = "created_at DESC, id DESC"
