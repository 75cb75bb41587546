package inter

import (
	"fmt"
	"math/bits"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/rony4d/d2items/inter/stats"
	"github.com/rony4d/d2items/sheet"
	"github.com/rony4d/d2items/utils/cser"
)

const (
	// RealmDataSize is the size of the optional realm blob.
	RealmDataSize = 16
	// MaxModGroups is mods[0] plus one list per item_lists bit.
	MaxModGroups = 9

	statDefense       = "armorclass"
	statMaxDurability = "maxdurability"
)

// Runeword is the runeword an item was made into.
// Tier selects the extra modifier list the runeword's stats are stored in.
type Runeword struct {
	ID   uint16 `json:"id" yaml:"id"`
	Tier uint8  `json:"tier" yaml:"tier"`
}

// ExtendedItem is the body of a non-compact item.
type ExtendedItem struct {
	ID      uint32
	Level   uint8
	Quality Quality

	Graphics *uint8
	AutoMod  *uint16
	Runeword *Runeword

	// PersonalizedName is present when the header says so.
	PersonalizedName string
	// SpellBook is the 5-bit field of tomes.
	SpellBook *uint8
	RealmData hexutil.Bytes

	// armor
	Defense uint16
	// armor and weapons
	MaxDurability uint8
	Durability    uint16
	// stackable items
	Quantity uint16
	// socketed items
	TotalSockets uint8
	// set items
	SetMask uint8

	// Mods holds the base modifier list followed by one list per bit of ItemLists.
	Mods [][]stats.ItemMod
}

// ItemLists returns the bitmask of extra modifier lists present in the record.
func (e *ExtendedItem) ItemLists() uint8 {
	var lists uint32
	if e.Runeword != nil {
		lists |= 1 << (uint32(e.Runeword.Tier) + 1)
	}
	if e.Quality != nil && e.Quality.Kind() == QualitySet {
		lists |= uint32(e.SetMask)
	}
	return uint8(lists)
}

func isBook(base string) bool {
	return base == "tbk " || base == "ibk "
}

// biased subtracts bias from a stored value, clamping at zero.
func biased(stored uint32, bias int) uint32 {
	v := int64(stored) - int64(bias)
	if v < 0 {
		return 0
	}
	return uint32(v)
}

func (c *Codec) classify(h *Header) (sheet.ItemClass, sheet.Row) {
	class, row, err := sheet.ClassifyItem(c.sheet, h.Base)
	if err != nil {
		cser.Fail("base", err)
	}
	return class, row
}

func (c *Codec) statBias(field, stat string) int {
	bias, err := sheet.StatBias(c.sheet, stat)
	if err != nil {
		cser.Fail(field, err)
	}
	return bias
}

func (c *Codec) readModList(r *cser.Reader, group int) []stats.ItemMod {
	mods, err := c.stats.ReadList(r.BitsR)
	if err != nil {
		cser.Fail(fmt.Sprintf("mods[%d]", group), err)
	}
	return mods
}

func (c *Codec) readExtended(r *cser.Reader, h *Header) *ExtendedItem {
	e := &ExtendedItem{}

	// 1. identity and quality tag
	e.ID = r.Uint("id", 32)
	e.Level = uint8(r.Uint("level", 7))
	kind := readQualityKind(r)

	// 2-3. optional graphics and automod
	if r.Bool("graphics") {
		v := uint8(r.Uint("graphics", 3))
		e.Graphics = &v
	}
	if r.Bool("automod") {
		v := uint16(r.Uint("automod", 11))
		e.AutoMod = &v
	}

	// 4. quality payload
	e.Quality = readQuality(r, kind)

	// 5. runeword
	var lists uint32
	if h.Runeword {
		rw := &Runeword{}
		rw.ID = uint16(r.Uint("runeword.id", 12))
		rw.Tier = uint8(r.Uint("runeword.tier", 4))
		e.Runeword = rw
		lists |= 1 << (uint32(rw.Tier) + 1)
	}

	// 6. personalized name, zero terminated
	if h.Personalized {
		var name []byte
		for {
			ch := byte(r.Uint("personalized_name", 8))
			if ch == 0 {
				break
			}
			name = append(name, ch)
		}
		e.PersonalizedName = string(name)
	}

	// 7. tomes
	if isBook(h.Base) {
		v := uint8(r.Uint("spellbook", 5))
		e.SpellBook = &v
	}

	// 8. realm data
	if r.Bool("realm_data") {
		e.RealmData = r.FixedBytes("realm_data", RealmDataSize)
	}

	// 9. type dependent fields
	class, row := c.classify(h)
	if class == sheet.ClassArmor {
		e.Defense = uint16(biased(r.Uint("defense", 11), c.statBias("defense", statDefense)))
	}
	if class == sheet.ClassArmor || class == sheet.ClassWeapon {
		stored := r.Uint("max_durability", 8)
		e.MaxDurability = uint8(biased(stored, c.statBias("max_durability", statMaxDurability)))
		if stored > 0 {
			e.Durability = uint16(r.Uint("durability", 9))
		}
	}

	// 10. quantity
	if sheet.Stackable(row) {
		e.Quantity = uint16(r.Uint("quantity", 9))
	}

	// 11. sockets
	if h.Socketed {
		e.TotalSockets = uint8(r.Uint("total_sockets", 4))
	}

	// 12. set bonus lists
	if kind == QualitySet {
		e.SetMask = uint8(r.Uint("set_mask", 5))
		lists |= uint32(e.SetMask)
	}

	// 13-14. modifier lists
	e.Mods = append(e.Mods, c.readModList(r, 0))
	for i := 0; i < 8; i++ {
		if lists&(1<<uint(i)) != 0 {
			e.Mods = append(e.Mods, c.readModList(r, len(e.Mods)))
		}
	}
	return e
}

func (c *Codec) writeExtended(w *cser.Writer, h *Header, e *ExtendedItem) {
	if e.Quality == nil {
		cser.Fail("quality", ErrMissingField)
	}
	if h.Runeword != (e.Runeword != nil) {
		cser.Fail("runeword", fmt.Errorf("%w: header flag %v", ErrMissingField, h.Runeword))
	}
	if !h.Personalized && e.PersonalizedName != "" {
		cser.Fail("personalized_name", fmt.Errorf("%w: header is not personalized", ErrUnexpectedField))
	}
	if e.Quality.Kind() != QualitySet && e.SetMask != 0 {
		cser.Fail("set_mask", fmt.Errorf("%w: quality %s", ErrUnexpectedField, e.Quality.Kind()))
	}
	if want := 1 + bits.OnesCount8(e.ItemLists()); len(e.Mods) != want {
		cser.Fail("mods", fmt.Errorf("%w: have %d groups, item_lists %08b needs %d", ErrModGroupCount, len(e.Mods), e.ItemLists(), want))
	}

	w.Uint("id", 32, uint64(e.ID))
	w.Uint("level", 7, uint64(e.Level))
	w.Uint("quality", 4, uint64(e.Quality.Kind()))

	w.Bool(e.Graphics != nil)
	if e.Graphics != nil {
		w.Uint("graphics", 3, uint64(*e.Graphics))
	}
	w.Bool(e.AutoMod != nil)
	if e.AutoMod != nil {
		w.Uint("automod", 11, uint64(*e.AutoMod))
	}

	writeQuality(w, e.Quality)

	if e.Runeword != nil {
		w.Uint("runeword.id", 12, uint64(e.Runeword.ID))
		w.Uint("runeword.tier", 4, uint64(e.Runeword.Tier))
	}

	if h.Personalized {
		for i := 0; i < len(e.PersonalizedName); i++ {
			if e.PersonalizedName[i] == 0 {
				cser.Fail("personalized_name", ErrPersonalizedName)
			}
			w.Uint("personalized_name", 8, uint64(e.PersonalizedName[i]))
		}
		w.Uint("personalized_name", 8, 0)
	}

	if isBook(h.Base) {
		if e.SpellBook == nil {
			cser.Fail("spellbook", ErrMissingField)
		}
		w.Uint("spellbook", 5, uint64(*e.SpellBook))
	}

	w.Bool(e.RealmData != nil)
	if e.RealmData != nil {
		if len(e.RealmData) != RealmDataSize {
			cser.Fail("realm_data", fmt.Errorf("%w: got %d", ErrRealmDataSize, len(e.RealmData)))
		}
		w.FixedBytes(e.RealmData)
	}

	class, row := c.classify(h)
	if class == sheet.ClassArmor {
		w.Int("defense", 11, int64(e.Defense), int64(c.statBias("defense", statDefense)))
	}
	if class == sheet.ClassArmor || class == sheet.ClassWeapon {
		bias := int64(c.statBias("max_durability", statMaxDurability))
		w.Int("max_durability", 8, int64(e.MaxDurability), bias)
		if int64(e.MaxDurability)+bias > 0 {
			w.Uint("durability", 9, uint64(e.Durability))
		} else if e.Durability != 0 {
			cser.Fail("durability", fmt.Errorf("%w: max durability is 0", ErrUnexpectedField))
		}
	} else if e.Durability != 0 || e.MaxDurability != 0 {
		cser.Fail("durability", fmt.Errorf("%w: %s has no durability", ErrUnexpectedField, class))
	}

	if sheet.Stackable(row) {
		w.Uint("quantity", 9, uint64(e.Quantity))
	}

	if h.Socketed {
		w.Uint("total_sockets", 4, uint64(e.TotalSockets))
	}

	if e.Quality.Kind() == QualitySet {
		w.Uint("set_mask", 5, uint64(e.SetMask))
	}

	for i, mods := range e.Mods {
		if err := c.stats.WriteList(w.BitsW, mods); err != nil {
			cser.Fail(fmt.Sprintf("mods[%d]", i), err)
		}
	}
}
