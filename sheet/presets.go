package sheet

import (
	"embed"
)

//go:embed presets/*.txt
var presetFS embed.FS

// Presets returns a Book over the embedded subset of the game sheets:
// the stats and base items the codec is exercised with out of the box.
func Presets() (*Book, error) {
	var tables []*Table
	for name, file := range Files {
		f, err := presetFS.Open("presets/" + file)
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
