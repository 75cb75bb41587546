package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/d2items/integration"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Log    LoggingConfig
	Tables TablesConfig
	Codec  integration.PresetConfig
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

type TablesConfig struct {
	Dir string
}

func defaultConfig() Config {
	def := DefaultConfig()
	codec, err := integration.GetPresetByName(def.Preset)
	if err != nil {
		panic(err)
	}
	return Config{
		Log: LoggingConfig{
			Verbosity: def.Logging.Verbosity,
			Format:    def.Logging.Format,
			Color:     def.Logging.Color,
		},
		Tables: TablesConfig{Dir: def.Tables.Dir},
		Codec:  codec,
	}
}

// MakeAllConfigs merges defaults, the optional config file, then CLI overrides
// into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(file, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

// loadConfigFile reads an INI file:
//
//	[log]
//	verbosity = 4
//	format = json
//	color = false
//	sentry_dsn = https://key@sentry.example/1
//
//	[tables]
//	dir = ./tables
//
//	[codec]
//	preset = strict
//	cache_rows = 1024
//	cache_cells = 16384
func loadConfigFile(path string, cfg *Config) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	log := file.Section("log")
	cfg.Log.Verbosity = log.Key("verbosity").MustInt(cfg.Log.Verbosity)
	cfg.Log.Format = log.Key("format").MustString(cfg.Log.Format)
	cfg.Log.Color = log.Key("color").MustBool(cfg.Log.Color)
	cfg.Log.SentryDSN = log.Key("sentry_dsn").MustString(cfg.Log.SentryDSN)

	if dir := file.Section("tables").Key("dir").String(); dir != "" {
		cfg.Tables.Dir = resolvePath(dir, filepath.Dir(path))
	}

	codec := file.Section("codec")
	if name := codec.Key("preset").String(); name != "" {
		p, err := integration.GetPresetByName(name)
		if err != nil {
			return err
		}
		integration.ApplyPreset(&cfg.Codec, p)
	}
	cfg.Codec.Strict = codec.Key("strict").MustBool(cfg.Codec.Strict)
	cfg.Codec.CacheRows = codec.Key("cache_rows").MustInt(cfg.Codec.CacheRows)
	cfg.Codec.CacheCells = codec.Key("cache_cells").MustUint(cfg.Codec.CacheCells)
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.GlobalIsSet("tables") {
		cfg.Tables.Dir = resolvePath(ctx.GlobalString("tables"), GuessWorkDir())
	}
	if ctx.GlobalIsSet("preset") {
		p, err := integration.GetPresetByName(ctx.GlobalString("preset"))
		if err != nil {
			return err
		}
		integration.ApplyPreset(&cfg.Codec, p)
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Log.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Log.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Log.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") {
		cfg.Log.SentryDSN = ctx.GlobalString("sentry.dsn")
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p, base string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
