// Package stats implements the modifier list codec of the item format.
//
// A list is a run of records terminated by the 9-bit Sentinel key. Each record is
// a 9-bit stat key, an optional parameter, the biased value and the values of the
// key's companion stats, all sized by the stat's itemstatcost row.
package stats

import (
	"fmt"
	"strings"
)

const (
	// KeyBits is the width of a stat key.
	KeyBits = 9
	// Sentinel is the reserved key closing every modifier list.
	Sentinel = 0x1FF
)

// Mod is one stat value.
type Mod struct {
	Key   uint16 `json:"key" yaml:"key"`
	Value int32  `json:"value" yaml:"value"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}

// ItemMod is a stat record of a modifier list: the base stat, its parameter
// when the stat carries one, and the companion stats stored right after it.
type ItemMod struct {
	Mod      `yaml:",inline"`
	Linked   []Mod  `json:"linked,omitempty" yaml:"linked,omitempty"`
	Param    uint32 `json:"param,omitempty" yaml:"param,omitempty"`
	HasParam bool   `json:"has_param,omitempty" yaml:"has_param,omitempty"`
}

func (m Mod) String() string {
	name := m.Name
	if name == "" {
		name = fmt.Sprintf("stat#%d", m.Key)
	}
	return fmt.Sprintf("%s=%d", name, m.Value)
}

func (m ItemMod) String() string {
	var sb strings.Builder
	sb.WriteString(m.Mod.String())
	if m.HasParam {
		fmt.Fprintf(&sb, "(%d)", m.Param)
	}
	for _, l := range m.Linked {
		sb.WriteString(" ")
		sb.WriteString(l.String())
	}
	return sb.String()
}

// Linkage maps a base stat key to the keys whose values always follow it.
// Treat it as read-only once built.
type Linkage map[uint16][]uint16

// DefaultLinkage returns the companion table of the game's damage stats:
// the min damage of an element is followed by its max damage (and duration).
func DefaultLinkage() Linkage {
	return Linkage{
		17: {18},     // item_maxdamage_percent -> item_mindamage_percent
		48: {49},     // fire
		50: {51},     // lightning
		52: {53},     // magic
		54: {55, 56}, // cold, with length
		57: {58, 59}, // poison, with length
	}
}

// Companions returns the keys linked to key, nil for a standalone stat.
func (l Linkage) Companions(key uint16) []uint16 {
	return l[key]
}
