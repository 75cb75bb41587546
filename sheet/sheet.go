// Package sheet resolves rows of the game's tab-delimited property tables.
//
// The codec never reads sheets directly: it asks a Lookup for the row whose
// key column holds a given value and reads string cells from it. Book is the
// in-memory implementation, Cache wraps any Lookup with a weighted LRU.
package sheet

import (
	"errors"
	"sort"
	"strings"
)

// Table names and the columns the codec consumes.
const (
	ItemStatCost = "itemstatcost"
	Armor        = "armor"
	Weapons      = "weapons"
	Misc         = "misc"

	ColID            = "ID"
	ColStat          = "Stat"
	ColSaveBits      = "Save Bits"
	ColSaveAdd       = "Save Add"
	ColSaveParamBits = "Save Param Bits"
	ColCode          = "code"
	ColStackable     = "stackable"
)

var (
	ErrRowNotFound        = errors.New("sheet: row not found")
	ErrUnresolvedBaseItem = errors.New("sheet: base item code not found in any item type table")
	ErrBadCell            = errors.New("sheet: cell is not a number")
	ErrDuplicateTable     = errors.New("sheet: duplicate table")
)

// Lookup is the property table service: the row of table whose keyColumn equals key.
type Lookup interface {
	Row(table, keyColumn, key string) (Row, bool)
}

// Row maps column names to raw cell values.
type Row map[string]string

// Get returns the cell of field, or "" when the column is absent.
func (r Row) Get(field string) string {
	return r[field]
}

// Table is one sheet: its column order and its rows in file order.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Book is an immutable set of tables. Rows are resolved by linear scan, which
// is how the game itself indexes its sheets; wrap it in a Cache for hot paths.
type Book struct {
	tables map[string]*Table
}

// NewBook collects tables under their lower-cased names.
func NewBook(tables ...*Table) (*Book, error) {
	b := &Book{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		name := strings.ToLower(t.Name)
		if _, ok := b.tables[name]; ok {
			return nil, ErrDuplicateTable
		}
		b.tables[name] = t
	}
	return b, nil
}

// Row implements Lookup.
func (b *Book) Row(table, keyColumn, key string) (Row, bool) {
	t, ok := b.tables[strings.ToLower(table)]
	if !ok {
		return nil, false
	}
	for _, r := range t.Rows {
		if v, ok := r[keyColumn]; ok && v == key {
			return r, true
		}
	}
	return nil, false
}

// Table returns a table by name.
func (b *Book) Table(name string) (*Table, bool) {
	t, ok := b.tables[strings.ToLower(name)]
	return t, ok
}

// Names returns the sorted table names.
func (b *Book) Names() []string {
	out := make([]string, 0, len(b.tables))
	for name := range b.tables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
