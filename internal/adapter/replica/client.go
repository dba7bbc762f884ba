package replica

import (
	"context"
	"fmt"
	"log/slog"
)

// Transform rewrites a logical row into the shape a particular store
// persists. It is applied to secondary writes before column stripping, so a
// table whose secondary layout differs structurally (not just by missing
// columns) can re-encode values instead of losing them.
type Transform func(Row) Row

// Client performs dual writes. The primary store is the source of truth:
// its failure aborts the operation and is returned to the caller, and its
// result rows are the operation's result. The secondary write happens only
// after primary success and never surfaces an error.
type Client struct {
	primary    Store
	secondary  Store
	transforms map[string]Transform
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSecondaryTransform registers a per-table row transform applied to
// secondary writes before unknown columns are stripped.
func WithSecondaryTransform(table string, fn Transform) Option {
	return func(c *Client) {
		c.transforms[table] = fn
	}
}

// New creates a replication client over a primary and a secondary store.
func New(primary, secondary Store, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		primary:    primary,
		secondary:  secondary,
		transforms: make(map[string]Transform),
		log:        logger.With("component", "replica"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Insert writes rows to the primary, then mirrors them to the secondary.
// Returns the primary's result rows.
func (c *Client) Insert(ctx context.Context, table string, rows []Row) ([]Row, error) {
	out, err := c.primary.Insert(ctx, table, rows)
	if err != nil {
		return nil, fmt.Errorf("primary insert %s: %w", table, err)
	}

	c.mirror(ctx, table, "insert", func(shaped []Row) error {
		_, err := c.secondary.Insert(ctx, table, shaped)
		return err
	}, rows)

	return out, nil
}

// Upsert writes rows to the primary with insert-or-update semantics on the
// given conflict columns, then mirrors to the secondary.
func (c *Client) Upsert(ctx context.Context, table string, rows []Row, conflictColumns []string) ([]Row, error) {
	out, err := c.primary.Upsert(ctx, table, rows, conflictColumns)
	if err != nil {
		return nil, fmt.Errorf("primary upsert %s: %w", table, err)
	}

	c.mirror(ctx, table, "upsert", func(shaped []Row) error {
		_, err := c.secondary.Upsert(ctx, table, shaped, conflictColumns)
		return err
	}, rows)

	return out, nil
}

// Update applies a partial update to rows matching conds on the primary,
// then mirrors it. Returns the primary's updated rows.
func (c *Client) Update(ctx context.Context, table string, fields Row, conds []Condition) ([]Row, error) {
	out, err := c.primary.Update(ctx, table, fields, conds)
	if err != nil {
		return nil, fmt.Errorf("primary update %s: %w", table, err)
	}

	c.mirror(ctx, table, "update", func(shaped []Row) error {
		if len(shaped) == 0 || len(shaped[0]) == 0 {
			return nil
		}
		_, err := c.secondary.Update(ctx, table, shaped[0], conds)
		return err
	}, []Row{fields})

	return out, nil
}

// DeleteWhere deletes rows matching conds from the primary, then from the
// secondary. Conditions carry no store-specific columns, so they are
// mirrored as-is.
func (c *Client) DeleteWhere(ctx context.Context, table string, conds []Condition) error {
	if err := c.primary.DeleteWhere(ctx, table, conds); err != nil {
		return fmt.Errorf("primary delete %s: %w", table, err)
	}

	if _, known := c.secondary.Columns(table); known {
		if err := c.secondary.DeleteWhere(ctx, table, conds); err != nil {
			c.logSecondaryFailure(ctx, table, "delete", err)
		}
	}

	return nil
}

// Select reads from the primary only. Application state is always derived
// from the authoritative store.
func (c *Client) Select(ctx context.Context, table string, conds []Condition, orderBy ...string) ([]Row, error) {
	rows, err := c.primary.Select(ctx, table, conds, orderBy...)
	if err != nil {
		return nil, fmt.Errorf("primary select %s: %w", table, err)
	}
	return rows, nil
}

// Ping checks the primary store.
func (c *Client) Ping(ctx context.Context) error {
	return c.primary.Ping(ctx)
}

// PingSecondary checks the secondary store (health reporting only).
func (c *Client) PingSecondary(ctx context.Context) error {
	return c.secondary.Ping(ctx)
}

// mirror shapes rows for the secondary and runs the write, swallowing any
// failure. Tables unknown to the secondary are skipped silently.
func (c *Client) mirror(ctx context.Context, table, op string, write func([]Row) error, rows []Row) {
	columns, known := c.secondary.Columns(table)
	if !known {
		return
	}

	shaped := make([]Row, 0, len(rows))
	transform := c.transforms[table]
	for _, row := range rows {
		if transform != nil {
			row = transform(row)
		}
		shaped = append(shaped, stripUnknown(row, columns))
	}

	if err := write(shaped); err != nil {
		c.logSecondaryFailure(ctx, table, op, err)
	}
}

func (c *Client) logSecondaryFailure(ctx context.Context, table, op string, err error) {
	c.log.WarnContext(ctx, "secondary write failed",
		slog.String("store", c.secondary.Name()),
		slog.String("table", table),
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

// stripUnknown copies row keeping only the given columns.
func stripUnknown(row Row, columns []string) Row {
	allowed := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		allowed[col] = struct{}{}
	}

	out := make(Row, len(row))
	for col, val := range row {
		if _, ok := allowed[col]; ok {
			out[col] = val
		}
	}
	return out
}
