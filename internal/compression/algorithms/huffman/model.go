package huffman

import (
	"bufio"
	"fmt"
	"io"
)

const (
	// EndOfStream is the synthetic symbol terminating every payload.
	EndOfStream = 256
	// SymbolCount is the size of the alphabet: 256 byte values plus EndOfStream.
	SymbolCount = EndOfStream + 1
)

// Counts is a scaled frequency table indexed by symbol. Byte slots hold
// values in 0..255, the EndOfStream slot is always 1.
type Counts [SymbolCount]uint32

// CountBytes tallies every byte of src and rewinds src to where it started.
func CountBytes(src io.ReadSeeker) ([256]uint64, error) {
	var counts [256]uint64
	start, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return counts, fmt.Errorf("huffman: locate input: %w", err)
	}
	br := bufio.NewReader(src)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return counts, fmt.Errorf("huffman: count bytes: %w", err)
		}
		counts[b]++
	}
	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return counts, fmt.Errorf("huffman: rewind input: %w", err)
	}
	return counts, nil
}

// ScaleCounts squeezes raw counts into a byte each. Every byte seen at least
// once keeps a count of at least 1.
func ScaleCounts(counts [256]uint64) Counts {
	var maxCount uint64
	for _, n := range counts {
		maxCount = max(maxCount, n)
	}
	if maxCount == 0 {
		maxCount = 1
	}
	scale := maxCount/255 + 1

	var scaled Counts
	for i, n := range counts {
		v := n / scale
		if v == 0 && n != 0 {
			v = 1
		}
		scaled[i] = uint32(v)
	}
	scaled[EndOfStream] = 1
	return scaled
}
