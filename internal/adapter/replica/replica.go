// Package replica implements the dual-write replication client. Every
// logical write is performed against a primary store (authoritative for
// results and errors) and then mirrored to a secondary store on a
// best-effort basis. The two stores may carry different column sets for the
// same table; the client strips fields the secondary does not know before
// mirroring. There is no retry queue, reconciliation, or idempotency: a
// failed secondary write only produces a log line and the stores may
// transiently diverge.
package replica

import "context"

// Row is one logical table row as column/value pairs.
type Row map[string]any

// Op is a condition operator.
type Op string

const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	// Range operators are accepted by Select only; delete predicates are
	// restricted to eq/neq.
	OpGte Op = "gte"
	OpLte Op = "lte"
)

// Condition is a single column predicate.
type Condition struct {
	Column string
	Op     Op
	Value  any
}

// Eq builds an equality condition.
func Eq(column string, value any) Condition {
	return Condition{Column: column, Op: OpEq, Value: value}
}

// Neq builds an inequality condition.
func Neq(column string, value any) Condition {
	return Condition{Column: column, Op: OpNeq, Value: value}
}

// Gte builds a greater-or-equal condition (Select only).
func Gte(column string, value any) Condition {
	return Condition{Column: column, Op: OpGte, Value: value}
}

// Lte builds a less-or-equal condition (Select only).
func Lte(column string, value any) Condition {
	return Condition{Column: column, Op: OpLte, Value: value}
}

// Store is one of the two underlying databases. Implementations report the
// writable column set per table so the client can strip unknown fields
// before mirroring writes.
type Store interface {
	// Name identifies the store in logs ("primary", "secondary").
	Name() string
	// Columns returns the writable columns of table, and whether the
	// store knows the table at all.
	Columns(table string) ([]string, bool)

	Insert(ctx context.Context, table string, rows []Row) ([]Row, error)
	// Upsert inserts rows, updating all non-conflict columns when a row
	// with the same conflict-column values already exists.
	Upsert(ctx context.Context, table string, rows []Row, conflictColumns []string) ([]Row, error)
	Update(ctx context.Context, table string, fields Row, conds []Condition) ([]Row, error)
	DeleteWhere(ctx context.Context, table string, conds []Condition) error
	Select(ctx context.Context, table string, conds []Condition, orderBy ...string) ([]Row, error)

	Ping(ctx context.Context) error
}
