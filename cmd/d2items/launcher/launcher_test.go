package launcher

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/d2items/flags"
	"github.com/rony4d/d2items/integration"
	"github.com/rony4d/d2items/inter"
	"github.com/rony4d/d2items/inter/stats"
	"github.com/rony4d/d2items/sheet"
)

func configFromArgs(t *testing.T, args ...string) (Config, error) {
	var (
		cfg Config
		err error
	)
	app := flags.NewApp("")
	app.Action = func(ctx *cli.Context) error {
		cfg, err = MakeAllConfigs(ctx)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"d2items"}, args...)))
	return cfg, err
}

func TestMakeAllConfigs(t *testing.T) {
	cfg, err := configFromArgs(t)
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
	require.Equal(t, integration.DefaultPreset(), cfg.Codec)

	cfg, err = configFromArgs(t, "--preset", "strict", "--log.verbosity", "5", "--log.format", "json", "--tables", "/srv/tables")
	require.NoError(t, err)
	require.True(t, cfg.Codec.Strict)
	require.Equal(t, 5, cfg.Log.Verbosity)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "/srv/tables", cfg.Tables.Dir)

	_, err = configFromArgs(t, "--preset", "archive")
	require.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "d2items.ini")
	require.NoError(t, ioutil.WriteFile(path, []byte(`
[log]
verbosity = 4
format = json

[tables]
dir = tables

[codec]
preset = lite
strict = true
`), 0o644))

	cfg, err := configFromArgs(t, "--config", path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Log.Verbosity)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, filepath.Join(dir, "tables"), cfg.Tables.Dir)
	require.Equal(t, "lite", cfg.Codec.Name)
	require.True(t, cfg.Codec.Strict)
	require.Zero(t, cfg.Codec.CacheRows)

	cfg, err = configFromArgs(t, "--preset", "lite")
	require.NoError(t, err)
	require.Zero(t, cfg.Codec.CacheRows)

	// flags win over the file
	cfg, err = configFromArgs(t, "--config", path, "--log.verbosity", "1")
	require.NoError(t, err)
	require.Equal(t, 1, cfg.Log.Verbosity)

	_, err = configFromArgs(t, "--config", filepath.Join(dir, "missing.ini"))
	require.Error(t, err)

	bad := filepath.Join(dir, "bad.ini")
	require.NoError(t, ioutil.WriteFile(bad, []byte("[codec]\npreset = archive\n"), 0o644))
	_, err = configFromArgs(t, "--config", bad)
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	for v, level := range []logrus.Level{
		logrus.FatalLevel,
		logrus.ErrorLevel,
		logrus.WarnLevel,
		logrus.InfoLevel,
		logrus.DebugLevel,
		logrus.TraceLevel,
	} {
		log, err := newLogger(LoggingConfig{Verbosity: v, Format: "text"}, &buf)
		require.NoError(t, err)
		require.Equal(t, level, log.GetLevel())
	}

	log, err := newLogger(LoggingConfig{Verbosity: 9, Format: "json"}, &buf)
	require.NoError(t, err)
	require.Equal(t, logrus.TraceLevel, log.GetLevel())
	log.Info("hello")
	require.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = newLogger(LoggingConfig{Format: "xml"}, &buf)
	require.Error(t, err)
}

func runeItem(code string) inter.Item {
	return inter.Item{
		Header: inter.Header{Identified: true, Storage: inter.StorageStash, Base: code},
		Data: &inter.ExtendedItem{
			ID:      0xCAFE,
			Level:   12,
			Quality: inter.Normal{},
			Mods:    [][]stats.ItemMod{nil},
		},
	}
}

func run(t *testing.T, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(append([]string{"d2items"}, args...))
	return strings.TrimSpace(out.String()), err
}

func testCodec(t *testing.T) *inter.Codec {
	book, err := sheet.Presets()
	require.NoError(t, err)
	return inter.NewCodec(book)
}

func TestDecodeEncode(t *testing.T) {
	c := testCodec(t)
	item := runeItem("r01 ")
	raw, err := c.Marshal(&item)
	require.NoError(t, err)
	decoded, err := c.Unmarshal(raw)
	require.NoError(t, err)

	doc, err := run(t, "decode", "--hex", hexutil.Encode(raw))
	require.NoError(t, err)
	items, err := inter.Import([]byte(doc), inter.FormatJSON)
	require.NoError(t, err)
	require.Equal(t, []inter.Item{*decoded}, items)

	// prefix is optional
	doc2, err := run(t, "decode", "--hex", hexutil.Encode(raw)[2:])
	require.NoError(t, err)
	require.Equal(t, doc, doc2)

	path := filepath.Join(t.TempDir(), "item.json")
	require.NoError(t, ioutil.WriteFile(path, []byte(doc), 0o644))
	out, err := run(t, "encode", "--in", path)
	require.NoError(t, err)
	require.Equal(t, hexutil.Encode(raw), out)

	cborHex, err := run(t, "decode", "--hex", hexutil.Encode(raw), "--format", "cbor")
	require.NoError(t, err)
	cborDoc, err := hexutil.Decode(cborHex)
	require.NoError(t, err)
	items, err = inter.Import(cborDoc, inter.FormatCBOR)
	require.NoError(t, err)
	require.Equal(t, []inter.Item{*decoded}, items)
}

func TestDecodeEncodeList(t *testing.T) {
	c := testCodec(t)
	items := []inter.Item{runeItem("r01 "), runeItem("r02 ")}
	raw, err := c.WriteItemList(items)
	require.NoError(t, err)

	dir := t.TempDir()
	bin := filepath.Join(dir, "items.bin")
	require.NoError(t, ioutil.WriteFile(bin, raw, 0o644))

	doc, err := run(t, "decode", "--in", bin, "--list", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, doc, "r02")

	yml := filepath.Join(dir, "items.yaml")
	require.NoError(t, ioutil.WriteFile(yml, []byte(doc), 0o644))
	out, err := run(t, "encode", "--in", yml, "--format", "yaml", "--list")
	require.NoError(t, err)
	require.Equal(t, hexutil.Encode(raw), out)

	_, err = run(t, "encode", "--in", yml, "--format", "yaml")
	require.Error(t, err, "two items without --list")

	out, err = run(t, "list", "--hex", hexutil.Encode(raw))
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "r01")
	require.Contains(t, lines[0], "normal")
	require.Contains(t, lines[1], "r02")
}

func TestCommandErrors(t *testing.T) {
	_, err := run(t, "decode")
	require.Equal(t, errNoInput, err)

	_, err = run(t, "decode", "--hex", "0xzz")
	require.Error(t, err)

	_, err = run(t, "decode", "--hex", "0x10", "--list")
	require.Error(t, err)

	_, err = run(t, "encode")
	require.Error(t, err)

	_, err = run(t, "--tables", t.TempDir(), "decode", "--hex", "0x00")
	require.Error(t, err, "empty tables dir")
}

func TestHuffmanCommand(t *testing.T) {
	out, err := run(t, "huffman", "cap ")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)
	require.True(t, strings.HasPrefix(lines[0], "'c'  "))
	require.True(t, strings.HasSuffix(lines[4], " bits"))

	_, err = run(t, "huffman", "ca@ ")
	require.Error(t, err)

	_, err = run(t, "huffman")
	require.Error(t, err)
}
