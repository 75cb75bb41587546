package inter

import (
	"fmt"
	"strings"

	"github.com/rony4d/d2items/utils/cser"
)

// Status is where the item lives.
type Status uint8

const (
	StatusStored Status = iota
	StatusEquipped
	StatusBelt
	StatusGround
	StatusCursor
	StatusDropping
	StatusSocketed
)

// Slot is the body location of an equipped item.
type Slot uint8

const (
	SlotNone Slot = iota
	SlotHelmet
	SlotAmulet
	SlotArmor
	SlotRightHand
	SlotLeftHand
	SlotRightRing
	SlotLeftRing
	SlotBelt
	SlotBoots
	SlotGloves
	SlotRightHandSwap
	SlotLeftHandSwap
)

// Storage is the container of a stored item.
type Storage uint8

const (
	StorageNone      Storage = 0
	StorageInventory Storage = 1
	StorageCube      Storage = 4
	StorageStash     Storage = 5
)

var (
	statusNames  = []string{"stored", "equipped", "belt", "ground", "cursor", "dropping", "socketed"}
	slotNames    = []string{"none", "helmet", "amulet", "armor", "right_hand", "left_hand", "right_ring", "left_ring", "belt", "boots", "gloves", "right_hand_swap", "left_hand_swap"}
	storageNames = map[Storage]string{StorageNone: "none", StorageInventory: "inventory", StorageCube: "cube", StorageStash: "stash"}
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return int(s) < len(statusNames)
}

func (s Slot) Valid() bool {
	return int(s) < len(slotNames)
}

func (s Storage) Valid() bool {
	_, ok := storageNames[s]
	return ok
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
	return statusNames[s]
}

func (s Slot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Slot(%d)", uint8(s))
	}
	return slotNames[s]
}

func (s Storage) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Storage(%d)", uint8(s))
	}
	return storageNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &InvalidEnumError{Enum: "status", Value: uint32(s)}
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("%w: status %q", ErrInvalidEnumValue, text)
}

func (s Slot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &InvalidEnumError{Enum: "slot", Value: uint32(s)}
	}
	return []byte(s.String()), nil
}

func (s *Slot) UnmarshalText(text []byte) error {
	for i, name := range slotNames {
		if name == string(text) {
			*s = Slot(i)
			return nil
		}
	}
	return fmt.Errorf("%w: slot %q", ErrInvalidEnumValue, text)
}

func (s Storage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, &InvalidEnumError{Enum: "storage", Value: uint32(s)}
	}
	return []byte(s.String()), nil
}

func (s *Storage) UnmarshalText(text []byte) error {
	for v, name := range storageNames {
		if name == string(text) {
			*s = v
			return nil
		}
	}
	return fmt.Errorf("%w: storage %q", ErrInvalidEnumValue, text)
}

// Header is the fixed prefix of every item record.
type Header struct {
	Identified   bool `json:"identified" yaml:"identified"`
	Broken       bool `json:"broken" yaml:"broken"`
	Socketed     bool `json:"socketed" yaml:"socketed"`
	PickedUp     bool `json:"picked_up" yaml:"picked_up"`
	Ear          bool `json:"ear" yaml:"ear"`
	StarterGear  bool `json:"starter_gear" yaml:"starter_gear"`
	Compact      bool `json:"compact" yaml:"compact"`
	Ethereal     bool `json:"ethereal" yaml:"ethereal"`
	Personalized bool `json:"personalized" yaml:"personalized"`
	Runeword     bool `json:"runeword" yaml:"runeword"`

	Status  Status  `json:"status" yaml:"status"`
	Slot    Slot    `json:"slot" yaml:"slot"`
	Column  uint8   `json:"column" yaml:"column"`
	Row     uint8   `json:"row" yaml:"row"`
	Storage Storage `json:"storage" yaml:"storage"`

	// Base is the 4-character base item code, 3-letter codes padded with a space.
	Base          string `json:"base" yaml:"base"`
	SocketedCount uint8  `json:"socketed_count" yaml:"socketed_count"`
}

// Constants of the reserved header bits, as the game writes them.
const (
	headerBit23   = true
	headerVersion = 0xA0 // bits 27..34, the low 3 bits of the format version sit at 32..34
)

// BaseCode returns the base code without its padding.
func (h *Header) BaseCode() string {
	return strings.TrimRight(h.Base, " ")
}

func (h *Header) socketedCountBits() int {
	if h.Compact {
		return 1
	}
	return 3
}

func (c *Codec) readHeader(r *cser.Reader) Header {
	var h Header

	r.Align()
	r.Skip("reserved", 4)
	h.Identified = r.Bool("identified")
	r.Skip("reserved", 3)
	h.Broken = r.Bool("broken")
	r.Skip("reserved", 2)
	h.Socketed = r.Bool("socketed")
	r.Skip("reserved", 1)
	h.PickedUp = r.Bool("picked_up")
	r.Skip("reserved", 2)
	h.Ear = r.Bool("ear")
	h.StarterGear = r.Bool("starter_gear")
	r.Skip("reserved", 3)
	h.Compact = r.Bool("compact")
	h.Ethereal = r.Bool("ethereal")
	r.Skip("reserved", 1)
	h.Personalized = r.Bool("personalized")
	r.Skip("reserved", 1)
	h.Runeword = r.Bool("runeword")
	r.Skip("reserved", 8)

	if h.Status = Status(r.Uint("status", 3)); !h.Status.Valid() {
		cser.Fail("status", &InvalidEnumError{Enum: "status", Value: uint32(h.Status)})
	}
	if h.Slot = Slot(r.Uint("slot", 4)); !h.Slot.Valid() {
		cser.Fail("slot", &InvalidEnumError{Enum: "slot", Value: uint32(h.Slot)})
	}
	h.Column = uint8(r.Uint("column", 4))
	h.Row = uint8(r.Uint("row", 4))
	if h.Storage = Storage(r.Uint("storage", 3)); !h.Storage.Valid() {
		cser.Fail("storage", &InvalidEnumError{Enum: "storage", Value: uint32(h.Storage)})
	}

	var base [4]byte
	for i := range base {
		ch, err := c.tree.ReadChar(r.BitsR)
		if err != nil {
			cser.Fail("base", err)
		}
		base[i] = ch
	}
	h.Base = string(base[:])

	h.SocketedCount = uint8(r.Uint("socketed_count", h.socketedCountBits()))
	return h
}

func (c *Codec) writeHeader(w *cser.Writer, h *Header) {
	if !h.Status.Valid() {
		cser.Fail("status", &InvalidEnumError{Enum: "status", Value: uint32(h.Status)})
	}
	if !h.Slot.Valid() {
		cser.Fail("slot", &InvalidEnumError{Enum: "slot", Value: uint32(h.Slot)})
	}
	if !h.Storage.Valid() {
		cser.Fail("storage", &InvalidEnumError{Enum: "storage", Value: uint32(h.Storage)})
	}
	if len(h.Base) != 4 {
		cser.Fail("base", fmt.Errorf("%w: %q", ErrBaseCodeLength, h.Base))
	}

	w.Zero(4)
	w.Bool(h.Identified)
	w.Zero(3)
	w.Bool(h.Broken)
	w.Zero(2)
	w.Bool(h.Socketed)
	w.Zero(1)
	w.Bool(h.PickedUp)
	w.Zero(2)
	w.Bool(h.Ear)
	w.Bool(h.StarterGear)
	w.Zero(3)
	w.Bool(h.Compact)
	w.Bool(h.Ethereal)
	w.Bool(headerBit23)
	w.Bool(h.Personalized)
	w.Zero(1)
	w.Bool(h.Runeword)
	w.Uint("reserved", 8, headerVersion)

	w.Uint("status", 3, uint64(h.Status))
	w.Uint("slot", 4, uint64(h.Slot))
	w.Uint("column", 4, uint64(h.Column))
	w.Uint("row", 4, uint64(h.Row))
	w.Uint("storage", 3, uint64(h.Storage))

	for i := 0; i < len(h.Base); i++ {
		if err := c.tree.WriteChar(w.BitsW, h.Base[i]); err != nil {
			cser.Fail("base", err)
		}
	}
	w.Uint("socketed_count", h.socketedCountBits(), uint64(h.SocketedCount))
}
