package sheet

import (
	"github.com/Fantom-foundation/lachesis-base/utils/wlru"
)

type cacheKey struct {
	table, column, key string
}

type cachedRow struct {
	row   Row
	found bool
}

// Cache memoizes row resolution of an underlying Lookup, misses included.
// Entries are weighted by their cell count. Safe for concurrent use.
type Cache struct {
	backend Lookup
	rows    *wlru.Cache
}

// NewCache wraps l keeping at most maxRows rows and maxCells cells.
func NewCache(l Lookup, maxRows int, maxCells uint) (*Cache, error) {
	rows, err := wlru.New(maxCells, maxRows)
	if err != nil {
		return nil, err
	}
	return &Cache{backend: l, rows: rows}, nil
}

// Row implements Lookup.
func (c *Cache) Row(table, keyColumn, key string) (Row, bool) {
	k := cacheKey{table, keyColumn, key}
	if v, ok := c.rows.Get(k); ok {
		hit := v.(cachedRow)
		return hit.row, hit.found
	}
	row, found := c.backend.Row(table, keyColumn, key)
	c.rows.Add(k, cachedRow{row: row, found: found}, uint(len(row)+1))
	return row, found
}

// Len returns the number of cached rows.
func (c *Cache) Len() int {
	return c.rows.Len()
}
