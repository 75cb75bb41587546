package inter

import (
	"fmt"
	"math"

	"github.com/rony4d/d2items/utils/bits"
	"github.com/rony4d/d2items/utils/fast"
)

// ItemListMagic opens every item list section of a save file.
const ItemListMagic = "JM"

// ReadItemList parses a "JM" section: the magic, a little-endian count of
// top-level items and the items themselves, each starting on a byte boundary.
// It returns the items and the number of bytes the section used.
func (c *Codec) ReadItemList(raw []byte) ([]Item, int, error) {
	fr := fast.NewReader(raw)
	magic, err := fr.Read(len(ItemListMagic))
	if err != nil {
		return nil, 0, err
	}
	if string(magic) != ItemListMagic {
		return nil, 0, fmt.Errorf("%w: got %q", ErrBadItemListMagic, magic)
	}
	count, err := fr.ReadUint16()
	if err != nil {
		return nil, 0, err
	}

	br := bits.FromBytes(fr.Rest())
	items := make([]Item, 0, count)
	for i := 0; i < int(count); i++ {
		it, err := c.ReadItem(br)
		if err != nil {
			return nil, 0, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, *it)
	}
	br.Align()
	return items, fr.Position() + br.Position().Byte, nil
}

// WriteItemList encodes items as a "JM" section.
func (c *Codec) WriteItemList(items []Item) ([]byte, error) {
	if len(items) > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyItems, len(items))
	}
	body := bits.Empty()
	for i := range items {
		if err := c.WriteItem(body, &items[i]); err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}

	fw := fast.NewWriter(make([]byte, 0, len(ItemListMagic)+2+len(body.Bytes)))
	fw.Write([]byte(ItemListMagic))
	fw.WriteUint16(uint16(len(items)))
	fw.Write(body.Bytes)
	return fw.Bytes(), nil
}
