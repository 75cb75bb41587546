// Package huffman encodes and decodes the characters of base item codes with the
// fixed prefix code of the save format.
package huffman

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

var (
	ErrCodeTableInconsistent = errors.New("huffman: inconsistent code table")
	ErrMalformedPath         = errors.New("huffman: bit sequence does not end at a leaf")
	ErrUnknownSymbol         = errors.New("huffman: symbol not in code table")
)

// BitReader is the bit source consumed while decoding.
type BitReader interface {
	ReadBit() (bool, error)
}

// BitWriter is the bit sink written to while encoding.
type BitWriter interface {
	WriteBit(bool)
}

// Node is a node of the decoding tree. Leaves carry a symbol, internal nodes have children.
type Node struct {
	Symbol byte
	leaf   bool
	Left   *Node // bit 0
	Right  *Node // bit 1
}

// Leaf reports whether the node terminates a code.
func (n *Node) Leaf() bool {
	return n.leaf
}

// Next descends one level following bit. A missing child is a malformed path.
func (n *Node) Next(bit bool) (*Node, error) {
	child := n.Left
	if bit {
		child = n.Right
	}
	if child == nil {
		return nil, ErrMalformedPath
	}
	return child, nil
}

// Decode walks bits from n and returns the symbol of the first leaf reached.
// ok is false if the bits run out or leave the tree before a leaf is hit.
func (n *Node) Decode(bits []bool) (symbol byte, ok bool) {
	cur := n
	for _, bit := range bits {
		next, err := cur.Next(bit)
		if err != nil {
			return 0, false
		}
		if next.leaf {
			return next.Symbol, true
		}
		cur = next
	}
	return 0, false
}

func (n *Node) insert(code string, symbol byte) error {
	cur := n
	for i := 0; i < len(code); i++ {
		if cur.leaf {
			return fmt.Errorf("%w: code %q extends the code of %q", ErrCodeTableInconsistent, code, cur.Symbol)
		}
		next := &cur.Left
		switch code[i] {
		case '0':
		case '1':
			next = &cur.Right
		default:
			return fmt.Errorf("%w: bad digit in code %q", ErrCodeTableInconsistent, code)
		}
		if *next == nil {
			*next = &Node{}
		}
		cur = *next
	}
	if cur.leaf || cur.Left != nil || cur.Right != nil {
		return fmt.Errorf("%w: code %q for %q collides with another code", ErrCodeTableInconsistent, code, symbol)
	}
	cur.leaf = true
	cur.Symbol = symbol
	return nil
}

// BuildTree constructs the decoding tree from the static code table.
func BuildTree() (*Node, error) {
	root := &Node{}
	for _, e := range codeTable {
		if len(e.code) == 0 {
			return nil, fmt.Errorf("%w: empty code for %q", ErrCodeTableInconsistent, e.symbol)
		}
		if err := root.insert(e.code, e.symbol); err != nil {
			return nil, err
		}
	}
	return root, nil
}

// MalformedPathError reports the bits consumed before decoding left the tree.
type MalformedPathError struct {
	Bits string
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("%v after bits %q", ErrMalformedPath, e.Bits)
}

func (e *MalformedPathError) Unwrap() error {
	return ErrMalformedPath
}

// Tree is the immutable codec built once and shared by every parse session.
type Tree struct {
	root   *Node
	strict bool
	log    logrus.FieldLogger
}

// Option customizes a Tree.
type Option func(*Tree)

// Strict makes EncodeChar fail on symbols outside the table instead of substituting a space.
func Strict(strict bool) Option {
	return func(t *Tree) {
		t.strict = strict
	}
}

// WithLogger sets the logger receiving encoder diagnostics.
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tree) {
		t.log = log
	}
}

// NewTree builds the codec. It panics only if the static table is broken.
func NewTree(opts ...Option) *Tree {
	root, err := BuildTree()
	if err != nil {
		panic(err)
	}
	t := &Tree{
		root: root,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root exposes the decoding tree.
func (t *Tree) Root() *Node {
	return t.root
}

// ReadChar feeds single bits from src into the tree until a leaf is reached.
func (t *Tree) ReadChar(src BitReader) (byte, error) {
	cur := t.root
	path := make([]byte, 0, 9)
	for {
		bit, err := src.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			path = append(path, '1')
		} else {
			path = append(path, '0')
		}
		cur, err = cur.Next(bit)
		if err != nil {
			return 0, &MalformedPathError{Bits: string(path)}
		}
		if cur.leaf {
			return cur.Symbol, nil
		}
	}
}

// EncodeChar returns the code of c as a string of '0' and '1' in stream order.
func (t *Tree) EncodeChar(c byte) (string, error) {
	for _, e := range codeTable {
		if e.symbol == c {
			return e.code, nil
		}
	}
	if t.strict {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, c)
	}
	t.log.WithField("symbol", string(c)).Warn("Huffman: symbol not in code table, encoding a space instead")
	return codeTable[0].code, nil
}

// WriteChar writes the code of c into dst.
func (t *Tree) WriteChar(dst BitWriter, c byte) error {
	code, err := t.EncodeChar(c)
	if err != nil {
		return err
	}
	for i := 0; i < len(code); i++ {
		dst.WriteBit(code[i] == '1')
	}
	return nil
}
