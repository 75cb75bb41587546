package integration

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/rony4d/d2items/inter"
	"github.com/rony4d/d2items/sheet"
)

// Package integration assembles a ready-to-use item codec from a set of sheets
// and a named preset. Presets bundle the codec knobs (strictness, lookup cache
// sizing) into profiles so the CLI can pick one with --preset.
//
// Usage:
//   cfg := integration.DefaultPreset() // lenient, cached lookups
//   cfg := integration.StrictPreset()  // reject anything the game would not write
//   cfg := integration.LitePreset()    // no cache, for one-shot decodes

// PresetConfig captures the tunable parameters that vary across preset profiles.
type PresetConfig struct {
	Name       string // human-readable identifier (e.g., "default", "strict")
	Strict     bool   // fail on base code symbols outside the Huffman alphabet
	CacheRows  int    // sheet rows memoized in front of the lookup; 0 disables the cache
	CacheCells uint   // cell budget of the row cache
}

func DefaultPreset() PresetConfig {
	return PresetConfig{
		Name:       "default",
		Strict:     false,
		CacheRows:  4096,      // every stat and base item of the game fits
		CacheCells: 64 * 1024, // rows are ~5-30 cells
	}
}

// StrictPreset refuses to encode base codes the game could not have written,
// instead of substituting a space and logging a warning.
func StrictPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "strict"
	cfg.Strict = true
	return cfg
}

// LitePreset resolves every row straight from the sheets.
// Use it for single decodes where building a cache costs more than it saves.
func LitePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "lite"
	cfg.CacheRows = 0
	cfg.CacheCells = 0
	return cfg
}

// GetPresetByName looks up a preset by its string identifier.
// This helper enables CLI flags like --preset=strict.
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "default":
		return DefaultPreset(), nil
	case "strict":
		return StrictPreset(), nil
	case "lite":
		return LitePreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: default, strict, lite)", name)
	}
}

// ApplyPreset merges a preset configuration into an existing config struct.
// The preset decides the cache sizes and the strict flag; a zero CacheRows
// turns the cache off.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	target.CacheRows = preset.CacheRows
	target.CacheCells = preset.CacheCells
	target.Strict = preset.Strict
	if preset.Name != "" {
		target.Name = preset.Name
	}
}

// NewLookup puts the preset's row cache in front of l.
func NewLookup(l sheet.Lookup, cfg PresetConfig) (sheet.Lookup, error) {
	if cfg.CacheRows <= 0 {
		return l, nil
	}
	return sheet.NewCache(l, cfg.CacheRows, cfg.CacheCells)
}

// NewCodec builds the item codec described by cfg over the sheets of l.
func NewCodec(l sheet.Lookup, cfg PresetConfig, log logrus.FieldLogger) (*inter.Codec, error) {
	lookup, err := NewLookup(l, cfg)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", cfg.Name, err)
	}
	log.WithFields(logrus.Fields{
		"preset": cfg.Name,
		"strict": cfg.Strict,
		"cache":  cfg.CacheRows,
	}).Debug("Item codec ready")
	return inter.NewCodec(lookup, inter.WithLogger(log), inter.Strict(cfg.Strict)), nil
}
