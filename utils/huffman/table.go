package huffman

// codeTable is the fixed prefix code used for the 4-character base item codes.
// Each code string is listed in stream order: its first character is the first
// bit read from (or written to) the bitstream.
var codeTable = [...]struct {
	symbol byte
	code   string
}{
	{' ', "10"},
	{'0', "11111011"},
	{'1', "1111100"},
	{'2', "001100"},
	{'3', "1101101"},
	{'4', "11111010"},
	{'5', "00010110"},
	{'6', "1101111"},
	{'7', "01111"},
	{'8', "000100"},
	{'9', "01110"},
	{'a', "11110"},
	{'b', "0101"},
	{'c', "01000"},
	{'d', "110001"},
	{'e', "110000"},
	{'f', "010011"},
	{'g', "11010"},
	{'h', "00011"},
	{'i', "1111110"},
	{'j', "000101110"},
	{'k', "010010"},
	{'l', "11101"},
	{'m', "01101"},
	{'n', "001101"},
	{'o', "1111111"},
	{'p', "11001"},
	{'q', "11011001"},
	{'r', "11100"},
	{'s', "0010"},
	{'t', "01100"},
	{'u', "00001"},
	{'v', "1101110"},
	{'w', "00000"},
	{'x', "00111"},
	{'y', "0001010"},
	{'z', "11011000"},
}

// Symbols returns the alphabet covered by the code table, in table order.
func Symbols() []byte {
	out := make([]byte, len(codeTable))
	for i, e := range codeTable {
		out[i] = e.symbol
	}
	return out
}
