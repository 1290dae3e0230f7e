package correctvt

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite/vtab"
)

// AdminModuleName is the module that rebuilds entity_correct tables.
//
//	CREATE VIRTUAL TABLE fix_admin USING entity_correct_admin;
//	SELECT op FROM fix_admin WHERE op MATCH 'fix'; -- reload fix from its entity table
//
// It returns a single row op='rebuilt:<count>' on success.
const AdminModuleName = "entity_correct_admin"

// registry tracks connected entity_correct tables by name. Each pooled
// connection attaches its own Table, so a name maps to a set.
type registry struct {
	mu     sync.Mutex
	tables map[string]map[*Table]struct{}
}

func newRegistry() *registry {
	return &registry{tables: map[string]map[*Table]struct{}{}}
}

func (r *registry) add(t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(t.name)
	if r.tables[key] == nil {
		r.tables[key] = map[*Table]struct{}{}
	}
	r.tables[key][t] = struct{}{}
}

func (r *registry) remove(t *Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(t.name)
	delete(r.tables[key], t)
	if len(r.tables[key]) == 0 {
		delete(r.tables, key)
	}
}

func (r *registry) lookup(name string) []*Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.tables[strings.ToLower(strings.TrimSpace(name))]
	out := make([]*Table, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}

// rebuild reloads every connected table called name and returns the corpus size.
func (r *registry) rebuild(ctx context.Context, name string) (int, error) {
	tables := r.lookup(name)
	if len(tables) == 0 {
		return 0, fmt.Errorf("correctvt: no %s table named %q", ModuleName, name)
	}
	n := 0
	for _, t := range tables {
		count, err := t.rebuild(ctx)
		if err != nil {
			return 0, err
		}
		n = count
	}
	return n, nil
}

// AdminModule implements vtab.Module for entity_correct_admin.
type AdminModule struct{ registry *registry }

// AdminTable is a single entity_correct_admin virtual table.
type AdminTable struct{ registry *registry }

// AdminCursor holds the result of one admin operation.
type AdminCursor struct {
	table *AdminTable
	rows  []string
	pos   int
}

// Create declares the admin schema.
func (m *AdminModule) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing admin table.
func (m *AdminModule) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *AdminModule) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("correctvt: admin needs at least 3 args, got %d", len(args))
	}
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(op TEXT)", args[2])); err != nil {
		return nil, err
	}
	return &AdminTable{registry: m.registry}, nil
}

// BestIndex pushes down MATCH on op.
func (t *AdminTable) BestIndex(info *vtab.IndexInfo) error {
	info.IdxNum = idxScan
	for i := range info.Constraints {
		c := &info.Constraints[i]
		if !c.Usable {
			continue
		}
		if c.Column == 0 && c.Op == vtab.OpMATCH {
			c.ArgIndex = 0
			c.Omit = true
			info.IdxNum = idxMatch
			break
		}
	}
	return nil
}

func (t *AdminTable) Open() (vtab.Cursor, error) { return &AdminCursor{table: t}, nil }
func (t *AdminTable) Disconnect() error          { return nil }
func (t *AdminTable) Destroy() error             { return nil }

// Filter runs the rebuild named by MATCH; a plain scan yields no rows.
func (c *AdminCursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	_ = idxStr
	c.rows = nil
	c.pos = 0
	if idxNum != idxMatch || len(vals) == 0 || vals[0] == nil {
		return nil
	}
	name, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("correctvt: admin MATCH expects a table name as TEXT, got %T", vals[0])
	}
	n, err := c.table.registry.rebuild(context.Background(), name)
	if err != nil {
		return err
	}
	c.rows = []string{fmt.Sprintf("rebuilt:%d", n)}
	return nil
}

func (c *AdminCursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

func (c *AdminCursor) Eof() bool { return c.pos >= len(c.rows) }

func (c *AdminCursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("correctvt: admin Column out of range")
	}
	if col == 0 {
		return c.rows[c.pos], nil
	}
	return nil, nil
}

func (c *AdminCursor) Rowid() (int64, error) { return int64(c.pos + 1), nil }
func (c *AdminCursor) Close() error          { c.rows = nil; c.pos = 0; return nil }
