package launcher

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/d2items/flags"
	"github.com/rony4d/d2items/inter"
	"github.com/rony4d/d2items/utils/huffman"
)

var errNoInput = errors.New("no input, use --hex or --in")

var (
	decodeCommand = cli.Command{
		Name:   "decode",
		Usage:  "Decode an item or an item list and print it as json, yaml or cbor (hex)",
		Flags:  flags.DecodeFlags(),
		Action: action(decode),
	}
	encodeCommand = cli.Command{
		Name:   "encode",
		Usage:  "Encode items read from a json, yaml or cbor document and print the bytes as hex",
		Flags:  flags.EncodeFlags(),
		Action: action(encode),
	}
	listCommand = cli.Command{
		Name:   "list",
		Usage:  "Print a one-line summary of every item of an item list",
		Flags:  []cli.Flag{flags.HexFlag, flags.InFlag},
		Action: action(list),
	}
	huffmanCommand = cli.Command{
		Name:      "huffman",
		Usage:     "Print the Huffman bit strings of a base item code",
		ArgsUsage: "<code>",
		Action:    action(huffmanCodes),
	}
)

// readInput returns the bytes given with --hex, or the content of the --in file.
func readInput(ctx *cli.Context) ([]byte, error) {
	if ctx.IsSet(flags.HexFlag.Name) {
		s := strings.TrimSpace(ctx.String(flags.HexFlag.Name))
		if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
			s = "0x" + s
		}
		return hexutil.Decode(s)
	}
	if path := ctx.String(flags.InFlag.Name); path != "" {
		return ioutil.ReadFile(path)
	}
	return nil, errNoInput
}

func decodeItems(s *session, raw []byte, list bool) ([]inter.Item, error) {
	if list {
		items, n, err := s.codec.ReadItemList(raw)
		if err != nil {
			return nil, err
		}
		if n < len(raw) {
			s.log.WithField("bytes", len(raw)-n).Warn("Trailing bytes after item list")
		}
		return items, nil
	}
	it, err := s.codec.Unmarshal(raw)
	if err != nil {
		return nil, err
	}
	return []inter.Item{*it}, nil
}

func decode(s *session, ctx *cli.Context) error {
	raw, err := readInput(ctx)
	if err != nil {
		return err
	}
	items, err := decodeItems(s, raw, ctx.Bool(flags.ListFlag.Name))
	if err != nil {
		return err
	}
	format := ctx.String(flags.FormatFlag.Name)
	doc, err := inter.Export(items, format)
	if err != nil {
		return err
	}
	if format == inter.FormatCBOR {
		_, err = fmt.Fprintln(s.out, hexutil.Encode(doc))
		return err
	}
	_, err = fmt.Fprintln(s.out, strings.TrimRight(string(doc), "\n"))
	return err
}

func encode(s *session, ctx *cli.Context) error {
	path := ctx.String(flags.InFlag.Name)
	if path == "" {
		return errors.New("encode needs --in")
	}
	doc, err := ioutil.ReadFile(path)
	if err != nil {
		return err
	}
	items, err := inter.Import(doc, ctx.String(flags.FormatFlag.Name))
	if err != nil {
		return err
	}

	var raw []byte
	if ctx.Bool(flags.ListFlag.Name) {
		raw, err = s.codec.WriteItemList(items)
	} else {
		if len(items) != 1 {
			return fmt.Errorf("document holds %d items, use --list to encode an item list", len(items))
		}
		raw, err = s.codec.Marshal(&items[0])
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, hexutil.Encode(raw))
	return err
}

func list(s *session, ctx *cli.Context) error {
	raw, err := readInput(ctx)
	if err != nil {
		return err
	}
	items, err := decodeItems(s, raw, true)
	if err != nil {
		return err
	}
	for i := range items {
		if _, err := fmt.Fprintln(s.out, summary(i, &items[i])); err != nil {
			return err
		}
	}
	return nil
}

func summary(i int, it *inter.Item) string {
	line := fmt.Sprintf("%3d  %-4s  %-10s", i, it.Header.BaseCode(), it.Header.Storage)
	if it.Data == nil {
		return line + "  compact"
	}
	line += fmt.Sprintf("  %-8s  lvl %2d  id %08x", it.Data.Quality.Kind(), it.Data.Level, it.Data.ID)
	for _, child := range it.Sockets {
		line += "  [" + child.Header.BaseCode() + "]"
	}
	return line
}

func huffmanCodes(s *session, ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("huffman needs exactly one base code")
	}
	tree := huffman.NewTree(huffman.Strict(true))
	var total int
	for _, c := range []byte(ctx.Args().First()) {
		code, err := tree.EncodeChar(c)
		if err != nil {
			return err
		}
		total += len(code)
		if _, err := fmt.Fprintf(s.out, "%q  %s\n", c, code); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(s.out, "%d bits\n", total)
	return err
}
