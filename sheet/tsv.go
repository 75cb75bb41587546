package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Files holds the sheet file name of every table the codec needs.
var Files = map[string]string{
	ItemStatCost: "ItemStatCost.txt",
	Armor:        "Armor.txt",
	Weapons:      "Weapons.txt",
	Misc:         "Misc.txt",
}

// LoadTSV reads a tab-delimited sheet whose first line is the header.
// A leading '*' on a column name (the game's comment marker) is dropped,
// and "Expansion" separator rows (an empty first cell) are skipped.
func LoadTSV(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("sheet %s: header: %w", name, err)
	}
	cols := make([]string, len(header))
	for i, h := range header {
		cols[i] = strings.TrimPrefix(strings.TrimSpace(h), "*")
	}

	t := &Table{Name: name, Columns: cols}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
		if len(rec) == 0 || strings.TrimSpace(rec[0]) == "" || rec[0] == "Expansion" {
			continue
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// LoadDir loads every sheet listed in Files from dir.
func LoadDir(dir string) (*Book, error) {
	var tables []*Table
	for name, file := range Files {
		f, err := os.Open(filepath.Join(dir, file))
		if err != nil {
			return nil, err
		}
		t, err := LoadTSV(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return NewBook(tables...)
}
