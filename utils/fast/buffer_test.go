package fast

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBuffer_Integration verifies that data written via Writer is retrieved via Reader.
func TestBuffer_Integration(t *testing.T) {
	const N = 100
	var (
		w         *Writer
		extraData = []byte{0, 0, 0xFF, 9, 0}
	)

	t.Run("Writer", func(t *testing.T) {
		require := require.New(t)

		w = NewWriter(make([]byte, 0, N/2))
		for i := byte(0); i < N; i++ {
			w.WriteByte(i)
		}
		require.Equal(N, len(w.Bytes()))

		w.Write(extraData)
		w.WriteUint16(0xBEEF)
		require.Equal(N+len(extraData)+2, len(w.Bytes()))
	})

	t.Run("Reader", func(t *testing.T) {
		require := require.New(t)

		r := NewReader(w.Bytes())
		require.False(r.Empty())
		require.Equal(0, r.Position())

		for exp := byte(0); exp < N; exp++ {
			got, err := r.ReadByte()
			require.NoError(err)
			require.Equal(exp, got, "ReadByte mismatch at index %d", exp)
		}
		require.Equal(N, r.Position())

		got, err := r.Read(len(extraData))
		require.NoError(err)
		require.Equal(extraData, got)

		v, err := r.ReadUint16()
		require.NoError(err)
		require.Equal(uint16(0xBEEF), v)

		require.True(r.Empty())
		require.Equal(N+len(extraData)+2, r.Position())
	})
}

func TestBuffer_Boundaries(t *testing.T) {
	t.Run("Empty Buffer", func(t *testing.T) {
		r := NewReader([]byte{})
		require.True(t, r.Empty())
		_, err := r.ReadByte()
		require.True(t, errors.Is(err, ErrShortBuffer))
	})

	t.Run("Partial Reads", func(t *testing.T) {
		r := NewReader([]byte{1, 2, 3, 4, 5})

		chunk, err := r.Read(2)
		require.NoError(t, err)
		require.Equal(t, []byte{1, 2}, chunk)

		require.NoError(t, r.Skip(1))
		require.Equal(t, []byte{4, 5}, r.Rest())

		_, err = r.Read(3)
		require.True(t, errors.Is(err, ErrShortBuffer))
		require.Equal(t, 3, r.Position(), "failed read must not move the cursor")

		_, err = r.ReadUint16()
		require.NoError(t, err)
		require.True(t, r.Empty())
	})

	t.Run("Write to nil buffer", func(t *testing.T) {
		w := NewWriter(nil)
		w.WriteByte(0xAA)
		require.Equal(t, []byte{0xAA}, w.Bytes())
	})
}

func Benchmark(b *testing.B) {
	b.Run("Write", func(b *testing.B) {
		b.Run("Std", func(b *testing.B) {
			w := bytes.NewBuffer(make([]byte, 0, b.N))
			for i := 0; i < b.N; i++ {
				w.WriteByte(byte(i))
			}
		})
		b.Run("Fast", func(b *testing.B) {
			w := NewWriter(make([]byte, 0, b.N))
			for i := 0; i < b.N; i++ {
				w.WriteByte(byte(i))
			}
		})
	})

	b.Run("Read", func(b *testing.B) {
		src := make([]byte, 1000)
		_, _ = rand.Read(src)

		b.Run("Std", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				r := bytes.NewReader(src)
				for j := 0; j < len(src); j++ {
					_, _ = r.ReadByte()
				}
			}
		})
		b.Run("Fast", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				r := NewReader(src)
				for j := 0; j < len(src); j++ {
					_, _ = r.ReadByte()
				}
			}
		})
	})
}
