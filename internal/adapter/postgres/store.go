// Package postgres implements the replica.Store interface on a PostgreSQL
// connection pool. SQL is built dynamically with squirrel from table names
// and row maps; result rows are scanned back into maps with scany so the
// replication layer stays schema-agnostic.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
)

// qb builds statements with PostgreSQL $N placeholders.
var qb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// DB is the subset of *pgxpool.Pool the store needs. pgxmock satisfies it
// for unit tests.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Store is a replica.Store backed by one PostgreSQL database. The tables
// map declares the writable columns of each table in this store's schema;
// the replication client uses it to strip unknown fields before mirroring.
type Store struct {
	name   string
	db     DB
	tables map[string][]string
	log    *slog.Logger
}

// NewStore creates a Store. name identifies the store in logs.
func NewStore(name string, db DB, tables map[string][]string, logger *slog.Logger) *Store {
	return &Store{
		name:   name,
		db:     db,
		tables: tables,
		log:    logger.With("store", name),
	}
}

// Name implements replica.Store.
func (s *Store) Name() string { return s.name }

// Columns implements replica.Store.
func (s *Store) Columns(table string) ([]string, bool) {
	cols, ok := s.tables[table]
	return cols, ok
}

// Ping implements replica.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Insert writes rows and returns them as persisted (RETURNING *). All rows
// of one call must share the same column set.
func (s *Store) Insert(ctx context.Context, table string, rows []replica.Row) ([]replica.Row, error) {
	if len(rows) == 0 {
		return []replica.Row{}, nil
	}

	cols := sortedColumns(rows[0])
	b := qb.Insert(table).Columns(cols...)
	for _, row := range rows {
		b = b.Values(values(row, cols)...)
	}
	b = b.Suffix("RETURNING *")

	return s.queryRows(ctx, table, b)
}

// Upsert inserts rows, updating every non-conflict column (and updated_at,
// when the table carries one) on a conflict with the given key columns.
func (s *Store) Upsert(ctx context.Context, table string, rows []replica.Row, conflictColumns []string) ([]replica.Row, error) {
	if len(rows) == 0 {
		return []replica.Row{}, nil
	}

	cols := sortedColumns(rows[0])
	b := qb.Insert(table).Columns(cols...)
	for _, row := range rows {
		b = b.Values(values(row, cols)...)
	}
	_, hasUpdatedAt := rows[0]["updated_at"]
	b = b.Suffix(upsertSuffix(cols, conflictColumns, !hasUpdatedAt && s.hasColumn(table, "updated_at")))

	return s.queryRows(ctx, table, b)
}

// Update applies a partial update to all rows matching conds and returns
// the updated rows. updated_at is bumped automatically when the table has
// the column and the caller did not set it.
func (s *Store) Update(ctx context.Context, table string, fields replica.Row, conds []replica.Condition) ([]replica.Row, error) {
	if len(fields) == 0 {
		return []replica.Row{}, nil
	}

	b := qb.Update(table)
	for _, col := range sortedColumns(fields) {
		b = b.Set(col, fields[col])
	}
	if _, set := fields["updated_at"]; !set && s.hasColumn(table, "updated_at") {
		b = b.Set("updated_at", squirrel.Expr("now()"))
	}
	b = b.Where(whereClause(conds)).Suffix("RETURNING *")

	return s.queryRows(ctx, table, b)
}

// DeleteWhere deletes all rows matching conds.
func (s *Store) DeleteWhere(ctx context.Context, table string, conds []replica.Condition) error {
	sql, args, err := qb.Delete(table).Where(whereClause(conds)).ToSql()
	if err != nil {
		return fmt.Errorf("build delete %s: %w", table, err)
	}

	if _, err := s.db.Exec(ctx, sql, args...); err != nil {
		return mapError(err, table)
	}
	return nil
}

// Select returns all rows matching conds, optionally ordered.
func (s *Store) Select(ctx context.Context, table string, conds []replica.Condition, orderBy ...string) ([]replica.Row, error) {
	b := qb.Select("*").From(table)
	if len(conds) > 0 {
		b = b.Where(whereClause(conds))
	}
	if len(orderBy) > 0 {
		b = b.OrderBy(orderBy...)
	}

	return s.queryRows(ctx, table, b)
}

// queryRows executes a row-returning statement and scans results into maps.
func (s *Store) queryRows(ctx context.Context, table string, b squirrel.Sqlizer) ([]replica.Row, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query %s: %w", table, err)
	}

	var raw []map[string]any
	if err := pgxscan.Select(ctx, s.db, &raw, sql, args...); err != nil {
		return nil, mapError(err, table)
	}

	rows := make([]replica.Row, len(raw))
	for i, m := range raw {
		rows[i] = replica.Row(m)
	}
	return rows, nil
}

func (s *Store) hasColumn(table, col string) bool {
	cols, ok := s.tables[table]
	if !ok {
		return false
	}
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}

// sortedColumns returns the row's column names in deterministic order.
func sortedColumns(row replica.Row) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func values(row replica.Row, cols []string) []any {
	vals := make([]any, len(cols))
	for i, col := range cols {
		vals[i] = row[col]
	}
	return vals
}

// whereClause converts conditions into a squirrel predicate.
func whereClause(conds []replica.Condition) squirrel.Sqlizer {
	and := make(squirrel.And, 0, len(conds))
	for _, c := range conds {
		switch c.Op {
		case replica.OpNeq:
			and = append(and, squirrel.NotEq{c.Column: c.Value})
		case replica.OpGte:
			and = append(and, squirrel.GtOrEq{c.Column: c.Value})
		case replica.OpLte:
			and = append(and, squirrel.LtOrEq{c.Column: c.Value})
		default:
			and = append(and, squirrel.Eq{c.Column: c.Value})
		}
	}
	return and
}

// upsertSuffix builds the ON CONFLICT clause updating non-key columns.
func upsertSuffix(cols, conflictColumns []string, bumpUpdatedAt bool) string {
	key := make(map[string]struct{}, len(conflictColumns))
	for _, col := range conflictColumns {
		key[col] = struct{}{}
	}

	var sets []string
	for _, col := range cols {
		if _, isKey := key[col]; isKey {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	if bumpUpdatedAt {
		sets = append(sets, "updated_at = now()")
	}

	if len(sets) == 0 {
		return fmt.Sprintf("ON CONFLICT (%s) DO NOTHING RETURNING *", strings.Join(conflictColumns, ", "))
	}
	return fmt.Sprintf("ON CONFLICT (%s) DO UPDATE SET %s RETURNING *",
		strings.Join(conflictColumns, ", "), strings.Join(sets, ", "))
}
