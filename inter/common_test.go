package inter

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/d2items/inter/stats"
	"github.com/rony4d/d2items/sheet"
)

var (
	headerFixture = []byte{0x10, 0x00, 0x80, 0x00, 0x4D, 0x04, 0x40, 0xBC, 0x19, 0xF2}

	// an identified equipped set cap with a base list and five bonus lists
	setItemFixture = []byte{
		0x10, 0x00, 0x80, 0x00, 0x4D, 0x04, 0x40, 0xBC, 0x19, 0x02,
		0xDC, 0xFF, 0x81, 0x55, 0x45, 0x12, 0xC8, 0x01, 0xC6, 0x83,
		0x0F, 0x41, 0x06, 0x00, 0x95, 0x13, 0xDC, 0x60, 0x0C, 0x18,
		0xC8, 0x52, 0xFF, 0x0F, 0xD0, 0xF8, 0x9F, 0xE0, 0xE5, 0xFF,
		0x8A, 0x6B, 0xFF, 0xA1, 0xF4, 0xFD, 0xFF, 0x93, 0xFF,
	}
)

func testBook(t testing.TB) *sheet.Book {
	book, err := sheet.Presets()
	require.NoError(t, err)
	return book
}

func testCodec(t testing.TB, opts ...Option) *Codec {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return NewCodec(testBook(t), append([]Option{WithLogger(log)}, opts...)...)
}

func mod(key uint16, value int32, name string) stats.ItemMod {
	return stats.ItemMod{Mod: stats.Mod{Key: key, Value: value, Name: name}}
}

func setItem() *Item {
	fire := mod(48, 3, "firemindam")
	fire.Linked = []stats.Mod{{Key: 49, Value: 6, Name: "firemaxdam"}}
	return &Item{
		Header: Header{
			Identified: true,
			Status:     StatusEquipped,
			Slot:       SlotHelmet,
			Column:     1,
			Base:       "cap ",
		},
		Data: &ExtendedItem{
			ID:            0xC0FFEE01,
			Level:         42,
			Quality:       Set{ID: 73},
			Defense:       47,
			MaxDurability: 24,
			Durability:    15,
			SetMask:       31,
			Mods: [][]stats.ItemMod{
				{
					mod(16, 50, "item_armor_percent"),
					mod(0, 10, "strength"),
					mod(39, 20, "fireresist"),
					fire,
					mod(89, 1, "item_lightradius"),
				},
				{mod(7, 20, "maxhp")},
				{mod(9, 15, "maxmana")},
				{mod(43, 15, "coldresist")},
				{mod(80, 25, "item_magicbonus")},
				{mod(127, 1, "item_allskills")},
			},
		},
	}
}

func runeItem(code string) Item {
	return Item{
		Header: Header{Identified: true, Status: StatusSocketed, Base: code},
		Data: &ExtendedItem{
			ID:      0x12345678,
			Level:   1,
			Quality: Normal{},
			Mods:    [][]stats.ItemMod{nil},
		},
	}
}

// socketedCap is a two-socket cap holding two runes.
func socketedCap() *Item {
	return &Item{
		Header: Header{
			Identified:    true,
			Socketed:      true,
			Storage:       StorageStash,
			Column:        3,
			Row:           7,
			Base:          "cap ",
			SocketedCount: 2,
		},
		Data: &ExtendedItem{
			ID:            7,
			Level:         30,
			Quality:       Superior{Grade: 2},
			Defense:       0,
			MaxDurability: 12,
			Durability:    12,
			TotalSockets:  2,
			Mods:          [][]stats.ItemMod{{mod(16, 15, "item_armor_percent")}},
		},
		Sockets: []Item{runeItem("r01 "), runeItem("r02 ")},
	}
}

// hidden hides single rows of a Lookup.
type hidden struct {
	sheet.Lookup
	table, column, key string
}

func (h hidden) Row(table, keyColumn, key string) (sheet.Row, bool) {
	if table == h.table && keyColumn == h.column && key == h.key {
		return nil, false
	}
	return h.Lookup.Row(table, keyColumn, key)
}
