package correctvt

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite/vtab"

	"github.com/viant/entity-corrector/corrector"
	"github.com/viant/entity-corrector/metric"
	"github.com/viant/entity-corrector/store"
	"github.com/viant/entity-corrector/vocab"
)

// ModuleName is the name used in CREATE VIRTUAL TABLE ... USING.
const ModuleName = "entity_correct"

const (
	idxScan  = 0
	idxMatch = 1
)

// Module implements vtab.Module for entity_correct tables.
type Module struct {
	db       *sql.DB
	base     []corrector.Option
	registry *registry
}

// Table is a single entity_correct virtual table.
type Table struct {
	db          *sql.DB
	name        string
	entityTable string
	opts        []corrector.Option
	registry    *registry

	mu        sync.Mutex
	corrector *corrector.Corrector
}

// Cursor iterates the rows produced by Filter.
type Cursor struct {
	table *Table
	rows  []row
	pos   int
}

type row struct {
	rowid    int64
	value    string
	distance vtab.Value
}

// Register registers the entity_correct and entity_correct_admin modules with
// db. base options apply to every table before the table's own arguments.
func Register(db *sql.DB, base ...corrector.Option) error {
	if db == nil {
		return fmt.Errorf("correctvt: db is nil")
	}
	reg := newRegistry()
	if err := registerModule(db, ModuleName, &Module{db: db, base: base, registry: reg}); err != nil {
		return err
	}
	return registerModule(db, AdminModuleName, &AdminModule{registry: reg})
}

func registerModule(db *sql.DB, name string, module vtab.Module) error {
	if err := vtab.RegisterModule(db, name, module); err != nil {
		if !strings.Contains(err.Error(), "already registered") {
			return err
		}
	}
	return nil
}

// Create declares the table schema.
func (m *Module) Create(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

// Connect attaches to an existing table.
func (m *Module) Connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	return m.connect(ctx, args)
}

func (m *Module) connect(ctx vtab.Context, args []string) (vtab.Table, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("correctvt: expected at least 3 args, got %d", len(args))
	}
	parsed, err := parseTableOptions(args[3:])
	if err != nil {
		return nil, err
	}
	if !store.ValidTable(parsed.entityTable) {
		return nil, fmt.Errorf("correctvt: invalid entity table %q", parsed.entityTable)
	}
	if err := ctx.Declare(fmt.Sprintf("CREATE TABLE %s(value TEXT, distance INTEGER HIDDEN)", args[2])); err != nil {
		return nil, err
	}
	opts := append(append([]corrector.Option(nil), m.base...), parsed.opts...)
	t := &Table{db: m.db, name: args[2], entityTable: parsed.entityTable, opts: opts, registry: m.registry}
	m.registry.add(t)
	return t, nil
}

// BestIndex pushes down MATCH on the value column.
func (t *Table) BestIndex(info *vtab.IndexInfo) error {
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

// Open allocates a new cursor.
func (t *Table) Open() (vtab.Cursor, error) { return &Cursor{table: t}, nil }

// Disconnect drops the table from the admin registry.
func (t *Table) Disconnect() error {
	t.registry.remove(t)
	return nil
}

// Destroy leaves the entity table untouched.
func (t *Table) Destroy() error {
	t.registry.remove(t)
	return nil
}

// ensureCorrector builds the corrector from the entity table on first use.
// A failed build (e.g. an empty corpus) is retried on the next query.
func (t *Table) ensureCorrector(ctx context.Context) (*corrector.Corrector, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.corrector != nil {
		return t.corrector, nil
	}
	return t.build(ctx)
}

// rebuild reloads the entity table, replacing the cached corrector.
func (t *Table) rebuild(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, err := t.build(ctx)
	if err != nil {
		return 0, err
	}
	return c.Len(), nil
}

// build requires t.mu.
func (t *Table) build(ctx context.Context) (*corrector.Corrector, error) {
	s, err := store.NewSQLiteStore(ctx, t.db, t.entityTable)
	if err != nil {
		return nil, err
	}
	entities, err := s.Entities(ctx)
	if err != nil {
		return nil, err
	}
	c, err := corrector.New(entities, t.opts...)
	if err != nil {
		return nil, err
	}
	t.corrector = c
	return c, nil
}

// Filter computes the result set: corrections for MATCH, the corpus otherwise.
func (c *Cursor) Filter(idxNum int, idxStr string, vals []vtab.Value) error {
	_ = idxStr
	c.rows = nil
	c.pos = 0
	ctx := context.Background()
	cr, err := c.table.ensureCorrector(ctx)
	if err != nil {
		return err
	}
	if idxNum != idxMatch {
		for i, e := range cr.Entities() {
			c.rows = append(c.rows, row{rowid: int64(i + 1), value: e})
		}
		return nil
	}
	if len(vals) == 0 || vals[0] == nil {
		return nil
	}
	query, ok := vals[0].(string)
	if !ok {
		return fmt.Errorf("correctvt: MATCH expects TEXT, got %T", vals[0])
	}
	fixes, err := cr.Correct(query)
	if err != nil {
		return err
	}
	q := vocab.Normalize(query)
	for i, f := range fixes {
		c.rows = append(c.rows, row{rowid: int64(i + 1), value: f, distance: int64(metric.Strings(q, f))})
	}
	return nil
}

// Next advances the cursor.
func (c *Cursor) Next() error {
	if c.pos < len(c.rows) {
		c.pos++
	}
	return nil
}

// Eof reports end-of-rows.
func (c *Cursor) Eof() bool { return c.pos >= len(c.rows) }

// Column returns the value of a column in the current row.
func (c *Cursor) Column(col int) (vtab.Value, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil, fmt.Errorf("correctvt: Column out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	switch col {
	case 0:
		return c.rows[c.pos].value, nil
	case 1:
		return c.rows[c.pos].distance, nil
	}
	return nil, fmt.Errorf("correctvt: unsupported column %d", col)
}

// Rowid returns the current rowid.
func (c *Cursor) Rowid() (int64, error) {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return 0, fmt.Errorf("correctvt: Rowid out of range (pos=%d,len=%d)", c.pos, len(c.rows))
	}
	return c.rows[c.pos].rowid, nil
}

// Close releases resources.
func (c *Cursor) Close() error { c.rows = nil; c.pos = 0; return nil }
