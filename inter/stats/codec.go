package stats

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/d2items/sheet"
	"github.com/rony4d/d2items/utils/bits"
)

// Codec reads and writes modifier lists. It holds no per-call state,
// so one Codec may serve any number of sessions.
type Codec struct {
	Sheet sheet.Lookup
	Links Linkage
	Log   logrus.FieldLogger
}

// NewCodec returns a codec over l with the default linkage table.
func NewCodec(l sheet.Lookup) *Codec {
	return &Codec{
		Sheet: l,
		Links: DefaultLinkage(),
		Log:   logrus.StandardLogger(),
	}
}

func (c *Codec) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logrus.StandardLogger()
	}
	return c.Log
}

func (c *Codec) statCost(key uint16, pos bits.Cursor) (sheet.StatCost, error) {
	sc, err := sheet.StatCostOf(c.Sheet, key)
	if err != nil {
		return sc, &UnknownKeyError{Key: key, Pos: pos, Err: err}
	}
	return sc, nil
}

func (c *Codec) readValue(r *bits.Reader, key uint16) (Mod, error) {
	sc, err := c.statCost(key, r.Position())
	if err != nil {
		return Mod{}, err
	}
	raw, err := r.Read(sc.SaveBits)
	if err != nil {
		return Mod{}, err
	}
	return Mod{Key: key, Name: sc.Name, Value: int32(int64(raw) - int64(sc.SaveAdd))}, nil
}

// ReadList parses records until the sentinel key. An empty list yields nil.
func (c *Codec) ReadList(r *bits.Reader) ([]ItemMod, error) {
	var mods []ItemMod
	for {
		pos := r.Position()
		raw, err := r.Read(KeyBits)
		if err != nil {
			return nil, err
		}
		if raw == Sentinel {
			c.logger().WithFields(logrus.Fields{"mods": len(mods), "end": r.Position()}).Trace("Modifier list decoded")
			return mods, nil
		}
		key := uint16(raw)
		sc, err := c.statCost(key, pos)
		if err != nil {
			return nil, err
		}

		m := ItemMod{Mod: Mod{Key: key, Name: sc.Name}}
		// empty Save Param Bits is authoritative: no param field at all
		if sc.SaveParamBits > 0 {
			if m.Param, err = r.Read(sc.SaveParamBits); err != nil {
				return nil, err
			}
			m.HasParam = true
		}
		v, err := r.Read(sc.SaveBits)
		if err != nil {
			return nil, err
		}
		m.Value = int32(int64(v) - int64(sc.SaveAdd))

		for _, ck := range c.Links.Companions(key) {
			linked, err := c.readValue(r, ck)
			if err != nil {
				return nil, err
			}
			m.Linked = append(m.Linked, linked)
		}
		mods = append(mods, m)
	}
}

func writeValue(w *bits.Writer, sc sheet.StatCost, value int32) error {
	if sc.SaveBits > bits.MaxBits {
		return bits.ErrBitCountTooBig
	}
	stored := int64(value) + int64(sc.SaveAdd)
	if stored < 0 || stored >= int64(1)<<uint(sc.SaveBits) {
		return fmt.Errorf("%w: %s=%d in %d bits (bias %d)", ErrValueOutOfRange, sc.Name, value, sc.SaveBits, sc.SaveAdd)
	}
	w.Write(sc.SaveBits, uint32(stored))
	return nil
}

func writeParam(w *bits.Writer, sc sheet.StatCost, param uint32) error {
	if sc.SaveParamBits > bits.MaxBits {
		return bits.ErrBitCountTooBig
	}
	if sc.SaveParamBits < bits.MaxBits && param>>uint(sc.SaveParamBits) != 0 {
		return fmt.Errorf("%w: %s param %d in %d bits", ErrValueOutOfRange, sc.Name, param, sc.SaveParamBits)
	}
	w.Write(sc.SaveParamBits, param)
	return nil
}

// WriteList appends mods followed by the sentinel key.
// Companion values are written from Linked in table order; missing ones are an error.
func (c *Codec) WriteList(w *bits.Writer, mods []ItemMod) error {
	for _, m := range mods {
		if m.Key >= Sentinel {
			return fmt.Errorf("%w: %d", ErrReservedKey, m.Key)
		}
		sc, err := c.statCost(m.Key, w.Position())
		if err != nil {
			return err
		}
		w.Write(KeyBits, uint32(m.Key))
		if sc.SaveParamBits > 0 {
			if err := writeParam(w, sc, m.Param); err != nil {
				return err
			}
		}
		if err := writeValue(w, sc, m.Value); err != nil {
			return err
		}

		companions := c.Links.Companions(m.Key)
		if len(m.Linked) != len(companions) {
			return fmt.Errorf("stat %d: %d linked values, want %d", m.Key, len(m.Linked), len(companions))
		}
		for i, ck := range companions {
			csc, err := c.statCost(ck, w.Position())
			if err != nil {
				return err
			}
			if err := writeValue(w, csc, m.Linked[i].Value); err != nil {
				return err
			}
		}
	}
	w.Write(KeyBits, Sentinel)
	return nil
}

// MarshalList encodes mods into a fresh fragment, ready to be spliced with ConcatUnaligned.
func (c *Codec) MarshalList(mods []ItemMod) (*bits.Writer, error) {
	w := bits.Empty()
	if err := c.WriteList(w, mods); err != nil {
		return nil, err
	}
	return w, nil
}
