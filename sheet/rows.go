package sheet

import (
	"fmt"
	"strconv"
	"strings"
)

// StatCost is the part of an itemstatcost row that drives the bit layout of a modifier.
type StatCost struct {
	ID            uint16
	Name          string
	SaveBits      int
	SaveAdd       int
	SaveParamBits int
}

// ItemClass is the item type table a base code resolves to.
type ItemClass uint8

const (
	ClassArmor ItemClass = iota + 1
	ClassWeapon
	ClassMisc
)

func (c ItemClass) String() string {
	switch c {
	case ClassArmor:
		return "armor"
	case ClassWeapon:
		return "weapon"
	case ClassMisc:
		return "misc"
	default:
		return fmt.Sprintf("ItemClass(%d)", uint8(c))
	}
}

func cellInt(row Row, field string) (int, error) {
	s := strings.TrimSpace(row.Get(field))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrBadCell, field, s)
	}
	return v, nil
}

func statCostFromRow(id uint16, row Row) (StatCost, error) {
	sc := StatCost{ID: id, Name: row.Get(ColStat)}
	var err error
	if sc.SaveBits, err = cellInt(row, ColSaveBits); err != nil {
		return sc, err
	}
	if sc.SaveAdd, err = cellInt(row, ColSaveAdd); err != nil {
		return sc, err
	}
	if sc.SaveParamBits, err = cellInt(row, ColSaveParamBits); err != nil {
		return sc, err
	}
	return sc, nil
}

// StatCostOf resolves the itemstatcost row of stat id.
func StatCostOf(l Lookup, id uint16) (StatCost, error) {
	row, ok := l.Row(ItemStatCost, ColID, strconv.Itoa(int(id)))
	if !ok {
		return StatCost{}, fmt.Errorf("%w: %s %s=%d", ErrRowNotFound, ItemStatCost, ColID, id)
	}
	return statCostFromRow(id, row)
}

// StatBias returns the Save Add of the stat called name, 0 when the stat is not in the sheet.
func StatBias(l Lookup, name string) (int, error) {
	row, ok := l.Row(ItemStatCost, ColStat, name)
	if !ok {
		return 0, nil
	}
	return cellInt(row, ColSaveAdd)
}

// ClassifyItem finds the item type table holding the base code: armor, then weapons, then misc.
// Trailing padding spaces of 3-letter codes are ignored.
func ClassifyItem(l Lookup, base string) (ItemClass, Row, error) {
	code := strings.TrimRight(base, " ")
	for _, c := range []struct {
		table string
		class ItemClass
	}{
		{Armor, ClassArmor},
		{Weapons, ClassWeapon},
		{Misc, ClassMisc},
	} {
		if row, ok := l.Row(c.table, ColCode, code); ok {
			return c.class, row, nil
		}
	}
	return 0, nil, fmt.Errorf("%w: %q", ErrUnresolvedBaseItem, base)
}

// Stackable reports whether an item type row carries a quantity field.
func Stackable(row Row) bool {
	return strings.TrimSpace(row.Get(ColStackable)) == "1"
}
