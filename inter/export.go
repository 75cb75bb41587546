package inter

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/d2items/inter/stats"
)

// Export formats of decoded items.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatCBOR = "cbor"
)

var cborEnc cbor.EncMode

func init() {
	var err error
	cborEnc, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

type qualityRecord struct {
	Kind   string    `json:"kind" yaml:"kind"`
	Grade  *uint8    `json:"grade,omitempty" yaml:"grade,omitempty"`
	Prefix *uint16   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix *uint16   `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	ID     *uint16   `json:"id,omitempty" yaml:"id,omitempty"`
	Name   *RareName `json:"name,omitempty" yaml:"name,omitempty"`
}

// extendedRecord is the exported shape of ExtendedItem, with the quality flattened.
type extendedRecord struct {
	ID      uint32        `json:"id" yaml:"id"`
	Level   uint8         `json:"level" yaml:"level"`
	Quality qualityRecord `json:"quality" yaml:"quality"`

	Graphics *uint8    `json:"graphics,omitempty" yaml:"graphics,omitempty"`
	AutoMod  *uint16   `json:"automod,omitempty" yaml:"automod,omitempty"`
	Runeword *Runeword `json:"runeword,omitempty" yaml:"runeword,omitempty"`

	PersonalizedName string        `json:"personalized_name,omitempty" yaml:"personalized_name,omitempty"`
	SpellBook        *uint8        `json:"spellbook,omitempty" yaml:"spellbook,omitempty"`
	RealmData        hexutil.Bytes `json:"realm_data,omitempty" yaml:"realm_data,omitempty"`

	Defense       uint16 `json:"defense,omitempty" yaml:"defense,omitempty"`
	MaxDurability uint8  `json:"max_durability,omitempty" yaml:"max_durability,omitempty"`
	Durability    uint16 `json:"durability,omitempty" yaml:"durability,omitempty"`
	Quantity      uint16 `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	TotalSockets  uint8  `json:"total_sockets,omitempty" yaml:"total_sockets,omitempty"`
	SetMask       uint8  `json:"set_mask,omitempty" yaml:"set_mask,omitempty"`

	Mods [][]stats.ItemMod `json:"mods" yaml:"mods"`
}

func newQualityRecord(q Quality) qualityRecord {
	if q == nil {
		return qualityRecord{}
	}
	rec := qualityRecord{Kind: q.Kind().String()}
	switch q := q.(type) {
	case Inferior:
		rec.Grade = &q.Grade
	case Superior:
		rec.Grade = &q.Grade
	case Magic:
		rec.Prefix, rec.Suffix = &q.Prefix, &q.Suffix
	case Set:
		rec.ID = &q.ID
	case Unique:
		rec.ID = &q.ID
	case Rare:
		rec.Name = &q.Name
	case Crafted:
		rec.Name = &q.Name
	}
	return rec
}

func (rec qualityRecord) quality() (Quality, error) {
	kind, err := parseQualityKind(rec.Kind)
	if err != nil {
		return nil, err
	}
	u8 := func(p *uint8) uint8 {
		if p == nil {
			return 0
		}
		return *p
	}
	u16 := func(p *uint16) uint16 {
		if p == nil {
			return 0
		}
		return *p
	}
	name := func() RareName {
		if rec.Name == nil {
			return RareName{}
		}
		return *rec.Name
	}
	switch kind {
	case QualityInferior:
		return Inferior{Grade: u8(rec.Grade)}, nil
	case QualityNormal:
		return Normal{}, nil
	case QualitySuperior:
		return Superior{Grade: u8(rec.Grade)}, nil
	case QualityMagic:
		return Magic{Prefix: u16(rec.Prefix), Suffix: u16(rec.Suffix)}, nil
	case QualitySet:
		return Set{ID: u16(rec.ID)}, nil
	case QualityRare:
		return Rare{Name: name()}, nil
	case QualityUnique:
		return Unique{ID: u16(rec.ID)}, nil
	default:
		return Crafted{Name: name()}, nil
	}
}

func (e *ExtendedItem) record() extendedRecord {
	return extendedRecord{
		ID:               e.ID,
		Level:            e.Level,
		Quality:          newQualityRecord(e.Quality),
		Graphics:         e.Graphics,
		AutoMod:          e.AutoMod,
		Runeword:         e.Runeword,
		PersonalizedName: e.PersonalizedName,
		SpellBook:        e.SpellBook,
		RealmData:        e.RealmData,
		Defense:          e.Defense,
		MaxDurability:    e.MaxDurability,
		Durability:       e.Durability,
		Quantity:         e.Quantity,
		TotalSockets:     e.TotalSockets,
		SetMask:          e.SetMask,
		Mods:             e.Mods,
	}
}

func (e *ExtendedItem) fromRecord(rec *extendedRecord) error {
	q, err := rec.Quality.quality()
	if err != nil {
		return err
	}
	*e = ExtendedItem{
		ID:               rec.ID,
		Level:            rec.Level,
		Quality:          q,
		Graphics:         rec.Graphics,
		AutoMod:          rec.AutoMod,
		Runeword:         rec.Runeword,
		PersonalizedName: rec.PersonalizedName,
		SpellBook:        rec.SpellBook,
		RealmData:        rec.RealmData,
		Defense:          rec.Defense,
		MaxDurability:    rec.MaxDurability,
		Durability:       rec.Durability,
		Quantity:         rec.Quantity,
		TotalSockets:     rec.TotalSockets,
		SetMask:          rec.SetMask,
		Mods:             rec.Mods,
	}
	return nil
}

func (e ExtendedItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.record())
}

func (e *ExtendedItem) UnmarshalJSON(b []byte) error {
	var rec extendedRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	return e.fromRecord(&rec)
}

func (e ExtendedItem) MarshalYAML() (interface{}, error) {
	return e.record(), nil
}

func (e *ExtendedItem) UnmarshalYAML(node *yaml.Node) error {
	var rec extendedRecord
	if err := node.Decode(&rec); err != nil {
		return err
	}
	return e.fromRecord(&rec)
}

func (e ExtendedItem) MarshalCBOR() ([]byte, error) {
	return cborEnc.Marshal(e.record())
}

func (e *ExtendedItem) UnmarshalCBOR(b []byte) error {
	var rec extendedRecord
	if err := cbor.Unmarshal(b, &rec); err != nil {
		return err
	}
	return e.fromRecord(&rec)
}

// Export renders items in one of the export formats.
func Export(items []Item, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(items, "", "  ")
	case FormatYAML:
		return yaml.Marshal(items)
	case FormatCBOR:
		return cborEnc.Marshal(items)
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

// Import parses items rendered by Export.
func Import(raw []byte, format string) ([]Item, error) {
	var (
		items []Item
		err   error
	)
	switch format {
	case FormatJSON:
		err = json.Unmarshal(raw, &items)
	case FormatYAML:
		err = yaml.Unmarshal(raw, &items)
	case FormatCBOR:
		err = cbor.Unmarshal(raw, &items)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}
