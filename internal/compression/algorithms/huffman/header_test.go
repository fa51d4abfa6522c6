package huffman

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeHeader(t *testing.T, counts *Counts) []byte {
	t.Helper()
	var buf bytes.Buffer
	out := NewOutputChannel(&buf)
	require.NoError(t, WriteHeader(out, counts))
	require.NoError(t, out.CloseOutput())
	return buf.Bytes()
}

func decodeHeader(data []byte) (Counts, error) {
	return ReadHeader(NewInputChannel(bytes.NewReader(data)))
}

func table(pairs map[int]uint32) *Counts {
	c := new(Counts)
	for i, n := range pairs {
		c[i] = n
	}
	c[EndOfStream] = 1
	return c
}

func TestHeaderLayout(t *testing.T) {
	tests := []struct {
		name   string
		counts *Counts
		want   []byte
	}{
		{"empty", table(nil), []byte{0}},
		{"single run", table(map[int]uint32{'A': 3, 'B': 1}), []byte{'A', 'B', 3, 1, 0}},
		{"three zeros bridged", table(map[int]uint32{10: 1, 14: 2}), []byte{10, 14, 1, 0, 0, 0, 2, 0}},
		{"four zeros split", table(map[int]uint32{10: 1, 15: 2}), []byte{10, 10, 1, 15, 15, 2, 0}},
		{"starts at zero", table(map[int]uint32{0: 5, 200: 1}), []byte{0, 0, 5, 200, 200, 1, 0}},
		{"ends at 255", table(map[int]uint32{252: 7, 255: 9}), []byte{252, 255, 7, 0, 0, 9, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data := encodeHeader(t, tc.counts)
			assert.Equal(t, tc.want, data)

			got, err := decodeHeader(data)
			require.NoError(t, err)
			assert.Equal(t, *tc.counts, got)
		})
	}
}

func TestHeaderRoundTripRandomTables(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n++ {
		var c Counts
		density := rng.Intn(100)
		for i := 0; i < 256; i++ {
			if rng.Intn(100) < density {
				c[i] = uint32(rng.Intn(256))
			}
		}
		c[EndOfStream] = 1

		got, err := decodeHeader(encodeHeader(t, &c))
		require.NoError(t, err)
		require.Equal(t, c, got, "table %d", n)
	}
}

func TestHeaderFullTable(t *testing.T) {
	var c Counts
	for i := 0; i < 256; i++ {
		c[i] = uint32(i%255 + 1)
	}
	c[EndOfStream] = 1
	data := encodeHeader(t, &c)
	assert.Len(t, data, 2+256+1)

	got, err := decodeHeader(data)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestHeaderRejectsMalformedRuns(t *testing.T) {
	_, err := decodeHeader([]byte{9, 5, 1, 0})
	assert.ErrorIs(t, err, ErrInvalidHeader)

	_, err = decodeHeader([]byte{5, 6, 1, 1, 6, 6, 1, 0})
	assert.ErrorIs(t, err, ErrInvalidHeader)

	_, err = decodeHeader([]byte{20, 21, 1, 1, 3, 3, 1, 0})
	assert.ErrorIs(t, err, ErrInvalidHeader)
}

func TestHeaderTruncated(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		{5},
		{5, 6, 1},
		{5, 6, 1, 1},
		{5, 6, 1, 1, 9},
	} {
		_, err := decodeHeader(data)
		assert.ErrorIs(t, err, ErrUnexpectedEndOfStream, "%v", data)
	}
}
