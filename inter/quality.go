package inter

import (
	"fmt"

	"github.com/rony4d/d2items/utils/cser"
)

// QualityKind is the 4-bit quality tag of an extended item.
type QualityKind uint8

const (
	QualityInferior QualityKind = iota + 1
	QualityNormal
	QualitySuperior
	QualityMagic
	QualitySet
	QualityRare
	QualityUnique
	QualityCrafted
)

var qualityNames = []string{"", "inferior", "normal", "superior", "magic", "set", "rare", "unique", "crafted"}

func (k QualityKind) Valid() bool {
	return k >= QualityInferior && k <= QualityCrafted
}

func (k QualityKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("QualityKind(%d)", uint8(k))
	}
	return qualityNames[k]
}

func parseQualityKind(s string) (QualityKind, error) {
	for i := QualityInferior; i <= QualityCrafted; i++ {
		if qualityNames[i] == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: quality %q", ErrInvalidEnumValue, s)
}

// Quality is the quality of an item together with the payload its kind carries.
type Quality interface {
	Kind() QualityKind
}

type (
	Inferior struct{ Grade uint8 }
	Normal   struct{}
	Superior struct{ Grade uint8 }
	Magic    struct{ Prefix, Suffix uint16 }
	Set      struct{ ID uint16 }
	Rare     struct{ Name RareName }
	Unique   struct{ ID uint16 }
	Crafted  struct{ Name RareName }
)

func (Inferior) Kind() QualityKind { return QualityInferior }
func (Normal) Kind() QualityKind   { return QualityNormal }
func (Superior) Kind() QualityKind { return QualitySuperior }
func (Magic) Kind() QualityKind    { return QualityMagic }
func (Set) Kind() QualityKind      { return QualitySet }
func (Rare) Kind() QualityKind     { return QualityRare }
func (Unique) Kind() QualityKind   { return QualityUnique }
func (Crafted) Kind() QualityKind  { return QualityCrafted }

// Affix is one optional magic affix id of a rare or crafted name.
type Affix struct {
	ID      uint16 `json:"id" yaml:"id"`
	Present bool   `json:"present" yaml:"present"`
}

// RareName is the generated name of a rare or crafted item and its affixes.
type RareName struct {
	First    uint8    `json:"first" yaml:"first"`
	Second   uint8    `json:"second" yaml:"second"`
	Prefixes [3]Affix `json:"prefixes" yaml:"prefixes"`
	Suffixes [3]Affix `json:"suffixes" yaml:"suffixes"`
}

func readRareName(r *cser.Reader) RareName {
	var n RareName
	n.First = uint8(r.Uint("rare.first", 8))
	n.Second = uint8(r.Uint("rare.second", 8))
	// affixes alternate: prefix 0, suffix 0, prefix 1, ...
	for i := 0; i < 3; i++ {
		for _, a := range []*Affix{&n.Prefixes[i], &n.Suffixes[i]} {
			if a.Present = r.Bool("rare.affix"); a.Present {
				a.ID = uint16(r.Uint("rare.affix", 11))
			}
		}
	}
	return n
}

func writeRareName(w *cser.Writer, n *RareName) {
	w.Uint("rare.first", 8, uint64(n.First))
	w.Uint("rare.second", 8, uint64(n.Second))
	for i := 0; i < 3; i++ {
		for _, a := range []Affix{n.Prefixes[i], n.Suffixes[i]} {
			w.Bool(a.Present)
			if a.Present {
				w.Uint("rare.affix", 11, uint64(a.ID))
			}
		}
	}
}

func readQualityKind(r *cser.Reader) QualityKind {
	kind := QualityKind(r.Uint("quality", 4))
	if !kind.Valid() {
		cser.Fail("quality", &InvalidEnumError{Enum: "quality", Value: uint32(kind)})
	}
	return kind
}

// readQuality reads the payload that follows the quality dependent part of the record.
func readQuality(r *cser.Reader, kind QualityKind) Quality {
	switch kind {
	case QualityInferior:
		return Inferior{Grade: uint8(r.Uint("quality.grade", 3))}
	case QualityNormal:
		return Normal{}
	case QualitySuperior:
		return Superior{Grade: uint8(r.Uint("quality.grade", 3))}
	case QualityMagic:
		q := Magic{}
		q.Prefix = uint16(r.Uint("magic.prefix", 11))
		q.Suffix = uint16(r.Uint("magic.suffix", 11))
		return q
	case QualitySet:
		return Set{ID: uint16(r.Uint("set.id", 12))}
	case QualityRare:
		return Rare{Name: readRareName(r)}
	case QualityUnique:
		return Unique{ID: uint16(r.Uint("unique.id", 12))}
	case QualityCrafted:
		return Crafted{Name: readRareName(r)}
	}
	cser.Fail("quality", &InvalidEnumError{Enum: "quality", Value: uint32(kind)})
	return nil
}

func writeQuality(w *cser.Writer, q Quality) {
	switch q := q.(type) {
	case Inferior:
		w.Uint("quality.grade", 3, uint64(q.Grade))
	case Normal:
	case Superior:
		w.Uint("quality.grade", 3, uint64(q.Grade))
	case Magic:
		w.Uint("magic.prefix", 11, uint64(q.Prefix))
		w.Uint("magic.suffix", 11, uint64(q.Suffix))
	case Set:
		w.Uint("set.id", 12, uint64(q.ID))
	case Rare:
		writeRareName(w, &q.Name)
	case Unique:
		w.Uint("unique.id", 12, uint64(q.ID))
	case Crafted:
		writeRareName(w, &q.Name)
	default:
		cser.Fail("quality", fmt.Errorf("%w: unsupported quality %T", ErrInvalidEnumValue, q))
	}
}
