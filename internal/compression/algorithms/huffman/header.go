package huffman

import (
	"errors"
	"fmt"
)

// maxBridgedZeros is the longest run of zero counts kept inside a run
// instead of starting a new one.
const maxBridgedZeros = 3

// WriteHeader stores the byte slots of counts as runs of
// {first, last, counts[first..last]} followed by a terminating zero byte.
func WriteHeader(ch *BitChannel, counts *Counts) error {
	next := nextNonZero(counts, 0)
	for next < 256 {
		first := next
		last := first
		for {
			for last < 255 && counts[last+1] != 0 {
				last++
			}
			next = nextNonZero(counts, last+1)
			if next < 256 && next-last-1 <= maxBridgedZeros {
				last = next
				continue
			}
			break
		}

		if err := ch.WriteByte(byte(first)); err != nil {
			return err
		}
		if err := ch.WriteByte(byte(last)); err != nil {
			return err
		}
		for i := first; i <= last; i++ {
			if err := ch.WriteByte(byte(counts[i])); err != nil {
				return err
			}
		}
	}
	return ch.WriteByte(0)
}

func nextNonZero(counts *Counts, from int) int {
	for from < 256 && counts[from] == 0 {
		from++
	}
	return from
}

// ReadHeader rebuilds the scaled table written by WriteHeader. The first run
// is always read, so a table starting at byte 0 survives; a lone zero byte at
// the very end of the stream is the empty table.
func ReadHeader(ch *BitChannel) (Counts, error) {
	var counts Counts
	counts[EndOfStream] = 1

	first, err := ch.ReadByte()
	if err != nil {
		return counts, fmt.Errorf("read header: %w", err)
	}
	last, err := ch.ReadByte()
	if first == 0 && errors.Is(err, ErrUnexpectedEndOfStream) {
		return counts, nil
	}
	if err != nil {
		return counts, fmt.Errorf("read header: %w", err)
	}

	prev := -1
	for {
		if last < first {
			return counts, fmt.Errorf("%w: run %d..%d is reversed", ErrInvalidHeader, first, last)
		}
		if int(first) <= prev {
			return counts, fmt.Errorf("%w: run starting at %d overlaps previous run ending at %d", ErrInvalidHeader, first, prev)
		}
		for i := int(first); i <= int(last); i++ {
			b, err := ch.ReadByte()
			if err != nil {
				return counts, fmt.Errorf("read header: %w", err)
			}
			counts[i] = uint32(b)
		}
		prev = int(last)

		if first, err = ch.ReadByte(); err != nil {
			return counts, fmt.Errorf("read header: %w", err)
		}
		if first == 0 {
			return counts, nil
		}
		if last, err = ch.ReadByte(); err != nil {
			return counts, fmt.Errorf("read header: %w", err)
		}
	}
}
