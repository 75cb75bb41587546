package inter

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/require"
)

func exportItems() []Item {
	withRealm := setItem()
	withRealm.Data.RealmData = hexutil.MustDecode("0x000102030405060708090a0b0c0d0e0f")
	rare := socketedCap()
	rare.Data.Quality = Rare{Name: RareName{First: 3, Prefixes: [3]Affix{{ID: 9, Present: true}}}}
	return []Item{
		*withRealm,
		*rare,
		{Header: Header{Compact: true, Base: "key "}},
	}
}

func TestExportRoundTrip(t *testing.T) {
	items := exportItems()
	for _, format := range []string{FormatJSON, FormatCBOR} {
		t.Run(format, func(t *testing.T) {
			raw, err := Export(items, format)
			require.NoError(t, err)
			got, err := Import(raw, format)
			require.NoError(t, err)
			require.Equal(t, items, got)
		})
	}

	// yaml renders nil lists as [], so only items without empty lists survive exactly
	t.Run(FormatYAML, func(t *testing.T) {
		raw, err := Export(items[:1], FormatYAML)
		require.NoError(t, err)
		require.Contains(t, string(raw), "status: equipped")
		require.Contains(t, string(raw), "kind: set")

		got, err := Import(raw, FormatYAML)
		require.NoError(t, err)
		require.Equal(t, items[:1], got)
	})
}

func TestExportJSONShape(t *testing.T) {
	require := require.New(t)

	raw, err := Export(exportItems()[:1], FormatJSON)
	require.NoError(err)

	var doc []map[string]interface{}
	require.NoError(json.Unmarshal(raw, &doc))
	header := doc[0]["header"].(map[string]interface{})
	require.Equal("equipped", header["status"])
	require.Equal("helmet", header["slot"])
	require.Equal("none", header["storage"])

	data := doc[0]["data"].(map[string]interface{})
	require.Equal(map[string]interface{}{"kind": "set", "id": float64(73)}, data["quality"])
	require.Equal("0x000102030405060708090a0b0c0d0e0f", data["realm_data"])
	require.Len(data["mods"], 6)
}

func TestExportErrors(t *testing.T) {
	_, err := Export(nil, "xml")
	require.Error(t, err)
	_, err = Import([]byte("[]"), "xml")
	require.Error(t, err)

	_, err = Import([]byte(`[{"header":{"status":"flying","base":"cap "}}]`), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidEnumValue)

	_, err = Import([]byte(`[{"header":{"base":"cap "},"data":{"quality":{"kind":"legendary"},"mods":[null]}}]`), FormatJSON)
	require.ErrorIs(t, err, ErrInvalidEnumValue)
}
