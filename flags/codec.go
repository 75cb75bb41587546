package flags

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	HexFlag = cli.StringFlag{
		Name:  "hex",
		Usage: "Item bytes as hex, 0x prefix optional",
	}
	InFlag = cli.StringFlag{
		Name:  "in",
		Usage: "Read input from this file instead of --hex",
	}
	ListFlag = cli.BoolFlag{
		Name:  "list",
		Usage: "Input is a JM item list rather than a single item",
	}
	FormatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Document format (json|yaml|cbor)",
		Value: "json",
	}
)

// DecodeFlags configure the decode and list commands.
func DecodeFlags() []cli.Flag {
	return []cli.Flag{HexFlag, InFlag, ListFlag, FormatFlag}
}

// EncodeFlags configure the encode command.
func EncodeFlags() []cli.Flag {
	return []cli.Flag{InFlag, ListFlag, FormatFlag}
}
