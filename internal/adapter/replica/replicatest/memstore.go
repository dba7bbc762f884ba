// Package replicatest provides an in-memory replica.Store for unit tests.
// MemStore mimics the server-side behavior of the real Postgres store: it
// fills id/created_at/updated_at on insert, honors natural-key upserts, and
// evaluates the same condition operators.
package replicatest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mindflowhq/mindflow-backend/internal/adapter/replica"
)

// MemStore is a thread-safe in-memory table set.
type MemStore struct {
	name   string
	tables map[string][]string

	mu   sync.Mutex
	rows map[string][]replica.Row
	err  error
	seq  int
	base time.Time
}

// NewMemStore creates a MemStore exposing the given writable columns per
// table. Tables absent from the map are unknown to the store.
func NewMemStore(name string, tables map[string][]string) *MemStore {
	return &MemStore{
		name:   name,
		tables: tables,
		rows:   make(map[string][]replica.Row),
		base:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// SetErr makes every subsequent operation fail with err. Pass nil to clear.
func (s *MemStore) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Rows returns a snapshot of a table's rows in insertion order.
func (s *MemStore) Rows(table string) []replica.Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]replica.Row, 0, len(s.rows[table]))
	for _, row := range s.rows[table] {
		out = append(out, copyRow(row))
	}
	return out
}

// Seed inserts rows directly, bypassing error injection. For test setup.
func (s *MemStore) Seed(table string, rows ...replica.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.rows[table] = append(s.rows[table], s.fill(copyRow(row)))
	}
}

func (s *MemStore) Name() string { return s.name }

func (s *MemStore) Columns(table string) ([]string, bool) {
	cols, ok := s.tables[table]
	return cols, ok
}

func (s *MemStore) Insert(_ context.Context, table string, rows []replica.Row) ([]replica.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	out := make([]replica.Row, 0, len(rows))
	for _, row := range rows {
		stored := s.fill(copyRow(row))
		s.rows[table] = append(s.rows[table], stored)
		out = append(out, copyRow(stored))
	}
	return out, nil
}

func (s *MemStore) Upsert(_ context.Context, table string, rows []replica.Row, conflictColumns []string) ([]replica.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	out := make([]replica.Row, 0, len(rows))
	for _, row := range rows {
		idx := s.findConflict(table, row, conflictColumns)
		if idx < 0 {
			stored := s.fill(copyRow(row))
			s.rows[table] = append(s.rows[table], stored)
			out = append(out, copyRow(stored))
			continue
		}

		existing := s.rows[table][idx]
		for col, val := range row {
			existing[col] = val
		}
		existing["updated_at"] = s.tick()
		out = append(out, copyRow(existing))
	}
	return out, nil
}

func (s *MemStore) Update(_ context.Context, table string, fields replica.Row, conds []replica.Condition) ([]replica.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	var out []replica.Row
	for _, row := range s.rows[table] {
		if !matches(row, conds) {
			continue
		}
		for col, val := range fields {
			row[col] = val
		}
		row["updated_at"] = s.tick()
		out = append(out, copyRow(row))
	}
	return out, nil
}

func (s *MemStore) DeleteWhere(_ context.Context, table string, conds []replica.Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}

	kept := s.rows[table][:0]
	for _, row := range s.rows[table] {
		if !matches(row, conds) {
			kept = append(kept, row)
		}
	}
	s.rows[table] = kept
	return nil
}

func (s *MemStore) Select(_ context.Context, table string, conds []replica.Condition, orderBy ...string) ([]replica.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	var out []replica.Row
	for _, row := range s.rows[table] {
		if matches(row, conds) {
			out = append(out, copyRow(row))
		}
	}

	if len(orderBy) > 0 {
		col, desc := parseOrder(orderBy[0])
		sort.SliceStable(out, func(i, j int) bool {
			less := compare(out[i][col], out[j][col]) < 0
			if desc {
				return !less
			}
			return less
		})
	}
	return out, nil
}

func (s *MemStore) Ping(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// fill assigns server-generated columns. Timestamps advance monotonically so
// ordering assertions are deterministic.
func (s *MemStore) fill(row replica.Row) replica.Row {
	if _, ok := row["id"]; !ok {
		row["id"] = uuid.New()
	}
	now := s.tick()
	if _, ok := row["created_at"]; !ok {
		row["created_at"] = now
	}
	if _, ok := row["updated_at"]; !ok {
		row["updated_at"] = now
	}
	return row
}

func (s *MemStore) tick() time.Time {
	s.seq++
	return s.base.Add(time.Duration(s.seq) * time.Second)
}

func (s *MemStore) findConflict(table string, row replica.Row, conflictColumns []string) int {
	if len(conflictColumns) == 0 {
		return -1
	}
	for i, existing := range s.rows[table] {
		match := true
		for _, col := range conflictColumns {
			if compare(existing[col], row[col]) != 0 {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func matches(row replica.Row, conds []replica.Condition) bool {
	for _, cond := range conds {
		cmp := compare(row[cond.Column], cond.Value)
		switch cond.Op {
		case replica.OpEq:
			if cmp != 0 {
				return false
			}
		case replica.OpNeq:
			if cmp == 0 {
				return false
			}
		case replica.OpGte:
			if cmp < 0 {
				return false
			}
		case replica.OpLte:
			if cmp > 0 {
				return false
			}
		}
	}
	return true
}

// compare orders two values by their string rendering, except times which
// compare chronologically. Good enough for uuids, day names, and ISO dates.
func compare(a, b any) int {
	at, aok := a.(time.Time)
	bt, bok := b.(time.Time)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func parseOrder(clause string) (col string, desc bool) {
	parts := strings.Fields(clause)
	col = parts[0]
	desc = len(parts) > 1 && strings.EqualFold(parts[1], "DESC")
	return col, desc
}

func copyRow(row replica.Row) replica.Row {
	out := make(replica.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
