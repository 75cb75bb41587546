package inter

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/d2items/inter/stats"
	"github.com/rony4d/d2items/sheet"
	"github.com/rony4d/d2items/utils/bits"
	"github.com/rony4d/d2items/utils/cser"
	"github.com/rony4d/d2items/utils/huffman"
)

// Item is one item record: its header, its body unless compact,
// and the items set in its sockets.
type Item struct {
	Header  Header        `json:"header" yaml:"header"`
	Data    *ExtendedItem `json:"data,omitempty" yaml:"data,omitempty"`
	Sockets []Item        `json:"socketed_items,omitempty" yaml:"socketed_items,omitempty"`
}

// Codec reads and writes item records. It is immutable once built and may be
// shared between goroutines as long as its Lookup is.
type Codec struct {
	sheet  sheet.Lookup
	tree   *huffman.Tree
	stats  *stats.Codec
	log    logrus.FieldLogger
	strict bool
}

// Option customizes a Codec.
type Option func(*Codec)

// WithLogger sets the logger of the codec and its components.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Codec) {
		c.log = log
	}
}

// Strict makes base codes outside the Huffman alphabet an error instead of a space.
func Strict(strict bool) Option {
	return func(c *Codec) {
		c.strict = strict
	}
}

// NewCodec returns an item codec resolving stats and base items through l.
func NewCodec(l sheet.Lookup, opts ...Option) *Codec {
	c := &Codec{
		sheet: l,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tree = huffman.NewTree(huffman.Strict(c.strict), huffman.WithLogger(c.log))
	c.stats = &stats.Codec{Sheet: l, Links: stats.DefaultLinkage(), Log: c.log}
	return c
}

// Sheet returns the lookup the codec resolves rows with.
func (c *Codec) Sheet() sheet.Lookup {
	return c.sheet
}

// ReadHeader parses an item header at the next byte boundary of r.
func (c *Codec) ReadHeader(r *bits.Reader) (h Header, err error) {
	defer func() {
		err = fieldError(h.Base, err)
	}()
	defer cser.Catch(&err)

	return c.readHeader(cser.WrapReader(r)), nil
}

// MarshalHeader encodes h into a fresh fragment.
func (c *Codec) MarshalHeader(h *Header) (frag *bits.Writer, err error) {
	defer func() {
		if err != nil {
			frag, err = nil, fieldError(h.Base, err)
		}
	}()
	defer cser.Catch(&err)

	w := cser.NewWriter()
	c.writeHeader(w, h)
	return w.BitsW, nil
}

// ReadItem parses one item and, recursively, its socketed items.
// On failure no part of the item is returned.
func (c *Codec) ReadItem(r *bits.Reader) (*Item, error) {
	return c.readItem(r)
}

func (c *Codec) readItem(br *bits.Reader) (item *Item, err error) {
	start := br.Position()
	it := &Item{}
	defer func() {
		if err != nil {
			item, err = nil, fieldError(it.Header.Base, err)
		}
	}()
	defer cser.Catch(&err)

	r := cser.WrapReader(br)
	it.Header = c.readHeader(r)
	if !it.Header.Compact {
		it.Data = c.readExtended(r, &it.Header)
		if it.Header.Socketed && it.Header.SocketedCount > 0 {
			for i := 0; i < int(it.Header.SocketedCount); i++ {
				r.Align()
				child, err := c.readItem(br)
				if err != nil {
					cser.Fail(fmt.Sprintf("socketed_items[%d]", i), err)
				}
				it.Sockets = append(it.Sockets, *child)
			}
		}
	}

	c.log.WithFields(logrus.Fields{
		"base":    it.Header.Base,
		"compact": it.Header.Compact,
		"sockets": len(it.Sockets),
		"start":   start,
		"end":     br.Position(),
	}).Trace("Item decoded")
	return it, nil
}

// MarshalItem encodes it into a fresh fragment: the header, the body appended
// bit-exact, then each socketed item starting on a byte boundary.
func (c *Codec) MarshalItem(it *Item) (frag *bits.Writer, err error) {
	defer func() {
		if err != nil {
			frag, err = nil, fieldError(it.Header.Base, err)
		}
	}()
	defer cser.Catch(&err)

	w := cser.NewWriter()
	c.writeHeader(w, &it.Header)

	if it.Header.Compact {
		if it.Data != nil || len(it.Sockets) != 0 {
			cser.Fail("data", ErrCompactBody)
		}
		return w.BitsW, nil
	}
	if it.Data == nil {
		cser.Fail("data", ErrMissingField)
	}

	body := cser.NewWriter()
	c.writeExtended(body, &it.Header, it.Data)
	w.BitsW.ConcatUnaligned(body.BitsW)

	want := 0
	if it.Header.Socketed {
		want = int(it.Header.SocketedCount)
	}
	if len(it.Sockets) != want {
		cser.Fail("socketed_items", fmt.Errorf("%w: %d items, header says %d", ErrSocketCount, len(it.Sockets), want))
	}
	for i := range it.Sockets {
		child, err := c.MarshalItem(&it.Sockets[i])
		if err != nil {
			cser.Fail(fmt.Sprintf("socketed_items[%d]", i), err)
		}
		w.BitsW.Concat(child)
	}
	return w.BitsW, nil
}

// WriteItem appends it to w, starting on a byte boundary.
// Nothing is written when the item cannot be encoded.
func (c *Codec) WriteItem(w *bits.Writer, it *Item) error {
	frag, err := c.MarshalItem(it)
	if err != nil {
		return err
	}
	w.Concat(frag)
	return nil
}

// Marshal returns the bytes of a single item record.
func (c *Codec) Marshal(it *Item) ([]byte, error) {
	return cser.MarshalBinaryAdapter(func(w *cser.Writer) error {
		return c.WriteItem(w.BitsW, it)
	})
}

// Unmarshal parses a single item record from raw. Bytes after the record are ignored.
func (c *Codec) Unmarshal(raw []byte) (*Item, error) {
	var it *Item
	err := cser.UnmarshalBinaryAdapter(raw, func(r *cser.Reader) (err error) {
		it, err = c.readItem(r.BitsR)
		return err
	})
	if err != nil {
		return nil, err
	}
	return it, nil
}
