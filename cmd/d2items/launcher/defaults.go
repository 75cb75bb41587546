package launcher

import (
	"github.com/rony4d/d2items/integration"
)

// Defaults bundles the baseline configuration values the launcher uses
// before the config file and flags override them.
type Defaults struct {
	Logging LoggingDefaults
	Tables  TablesDefaults
	Preset  string
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
}

// TablesDefaults locates the TSV sheets.
type TablesDefaults struct {
	Dir string //	Directory holding ItemStatCost.txt, Armor.txt, Weapons.txt and Misc.txt. Empty selects the tables embedded in the binary.
}

// DefaultConfig returns a fully populated Defaults instance.
func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 2,
			Format:    "text",
			Color:     false,
		},
		Tables: TablesDefaults{},
		Preset: integration.DefaultPreset().Name,
	}
}
