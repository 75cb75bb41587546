package sheet

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statSheet = "Stat\t*ID\tSave Bits\tSave Add\tSave Param Bits\n" +
	"strength\t0\t8\t32\t\n" +
	"Expansion\n" +
	"item_skillongethit\t201\t7\t0\t16\n" +
	"broken\t300\tx\t0\t\n"

func testBook(t *testing.T) *Book {
	stats, err := LoadTSV(ItemStatCost, strings.NewReader(statSheet))
	require.NoError(t, err)
	armor, err := LoadTSV(Armor, strings.NewReader("name\tcode\tstackable\nCap\tcap\t0\n"))
	require.NoError(t, err)
	misc, err := LoadTSV(Misc, strings.NewReader("name\tcode\tstackable\nTome of Town Portal\ttbk\t1\n"))
	require.NoError(t, err)
	book, err := NewBook(stats, armor, misc)
	require.NoError(t, err)
	return book
}

func TestLoadTSV(t *testing.T) {
	tbl, err := LoadTSV(ItemStatCost, strings.NewReader(statSheet))
	require.NoError(t, err)
	require.Equal(t, []string{"Stat", "ID", "Save Bits", "Save Add", "Save Param Bits"}, tbl.Columns)
	require.Len(t, tbl.Rows, 3, "the Expansion separator row is skipped")
	require.Equal(t, "201", tbl.Rows[1].Get(ColID))
	require.Equal(t, "", tbl.Rows[0].Get("no such column"))
}

func TestBook(t *testing.T) {
	book := testBook(t)

	row, ok := book.Row(ItemStatCost, ColStat, "strength")
	require.True(t, ok)
	require.Equal(t, "32", row.Get(ColSaveAdd))

	_, ok = book.Row(ItemStatCost, ColID, "999")
	require.False(t, ok)
	_, ok = book.Row("nosuchtable", ColID, "0")
	require.False(t, ok)

	require.Equal(t, []string{Armor, ItemStatCost, Misc}, book.Names())

	_, err := NewBook(&Table{Name: "a"}, &Table{Name: "A"})
	require.Equal(t, ErrDuplicateTable, err)
}

func TestStatCostOf(t *testing.T) {
	book := testBook(t)

	sc, err := StatCostOf(book, 201)
	require.NoError(t, err)
	require.Equal(t, StatCost{ID: 201, Name: "item_skillongethit", SaveBits: 7, SaveParamBits: 16}, sc)

	sc, err = StatCostOf(book, 0)
	require.NoError(t, err)
	require.Equal(t, 0, sc.SaveParamBits, "an empty param cell means no param")
	require.Equal(t, 32, sc.SaveAdd)

	_, err = StatCostOf(book, 1)
	require.True(t, errors.Is(err, ErrRowNotFound))

	_, err = StatCostOf(book, 300)
	require.True(t, errors.Is(err, ErrBadCell))
}

func TestStatBias(t *testing.T) {
	book := testBook(t)

	bias, err := StatBias(book, "strength")
	require.NoError(t, err)
	require.Equal(t, 32, bias)

	bias, err = StatBias(book, "armorclass")
	require.NoError(t, err)
	require.Equal(t, 0, bias, "absent stat rows default to a zero bias")
}

func TestClassifyItem(t *testing.T) {
	book := testBook(t)

	class, row, err := ClassifyItem(book, "cap ")
	require.NoError(t, err)
	require.Equal(t, ClassArmor, class)
	require.False(t, Stackable(row))

	class, row, err = ClassifyItem(book, "tbk ")
	require.NoError(t, err)
	require.Equal(t, ClassMisc, class)
	require.True(t, Stackable(row))

	_, _, err = ClassifyItem(book, "zzz ")
	require.True(t, errors.Is(err, ErrUnresolvedBaseItem))
}

type countingLookup struct {
	Lookup
	mu    sync.Mutex
	calls int
}

func (c *countingLookup) Row(table, keyColumn, key string) (Row, bool) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Lookup.Row(table, keyColumn, key)
}

func TestCache(t *testing.T) {
	backend := &countingLookup{Lookup: testBook(t)}
	cache, err := NewCache(backend, 16, 1024)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		sc, err := StatCostOf(cache, 201)
		require.NoError(t, err)
		assert.Equal(t, 16, sc.SaveParamBits)

		_, err = StatCostOf(cache, 999)
		assert.True(t, errors.Is(err, ErrRowNotFound))
	}
	require.Equal(t, 2, backend.calls, "hits and misses are both served from the cache")
	require.Equal(t, 2, cache.Len())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = ClassifyItem(cache, "cap ")
		}()
	}
	wg.Wait()
}

func TestPresets(t *testing.T) {
	book, err := Presets()
	require.NoError(t, err)

	for _, id := range []uint16{16, 39, 89, 201, 252} {
		_, err := StatCostOf(book, id)
		require.NoErrorf(t, err, "stat %d", id)
	}
	bias, err := StatBias(book, "armorclass")
	require.NoError(t, err)
	require.Equal(t, 10, bias)

	for code, class := range map[string]ItemClass{"cap ": ClassArmor, "hax ": ClassWeapon, "r01 ": ClassMisc} {
		got, _, err := ClassifyItem(book, code)
		require.NoError(t, err)
		require.Equal(t, class, got)
	}
}
