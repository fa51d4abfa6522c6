package huffman

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// DefaultProgressInterval is the number of whole bytes between two progress
// callbacks when no interval is configured.
const DefaultProgressInterval = 2048

const initialMask = 0x80

var (
	ErrUnexpectedEndOfStream = errors.New("huffman: unexpected end of stream")
	ErrInvalidHeader         = errors.New("huffman: invalid header")
	ErrBitCount              = errors.New("huffman: bit count out of range")
	ErrUnaligned             = errors.New("huffman: byte access on a partially consumed byte")
	ErrClosed                = errors.New("huffman: bit channel closed")
)

// ProgressFunc receives the number of bytes that passed through a channel
// since the previous call.
type ProgressFunc func(n int64)

// ChannelOption configures a BitChannel.
type ChannelOption func(*BitChannel)

// WithProgress makes the channel call fn every `every` bytes.
func WithProgress(fn ProgressFunc, every int64) ChannelOption {
	return func(c *BitChannel) {
		c.progress = fn
		if every > 0 {
			c.every = every
		}
	}
}

// BitChannel gives a bit-granular view of a byte stream, most significant
// bit first. A channel is either an input or an output channel and is not
// safe for concurrent use.
type BitChannel struct {
	r *bitio.Reader
	w *bitio.Writer

	// mask is the one-hot position of the next bit inside the current byte.
	mask   byte
	bytes  int64
	closed bool

	progress ProgressFunc
	every    int64
}

func newChannel(opts []ChannelOption) *BitChannel {
	c := &BitChannel{mask: initialMask, every: DefaultProgressInterval}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewOutputChannel returns a channel packing bits into w.
func NewOutputChannel(w io.Writer, opts ...ChannelOption) *BitChannel {
	c := newChannel(opts)
	c.w = bitio.NewWriter(w)
	return c
}

// NewInputChannel returns a channel unpacking bits from r.
func NewInputChannel(r io.Reader, opts ...ChannelOption) *BitChannel {
	c := newChannel(opts)
	c.r = bitio.NewReader(r)
	return c
}

// Bytes reports how many whole bytes have been written or loaded so far.
func (c *BitChannel) Bytes() int64 {
	return c.bytes
}

func (c *BitChannel) byteDone() {
	c.bytes++
	if c.progress != nil && c.bytes%c.every == 0 {
		c.progress(c.every)
	}
}

func (c *BitChannel) advance() {
	c.mask >>= 1
	if c.mask == 0 {
		c.mask = initialMask
		if c.w != nil {
			c.byteDone()
		}
	}
}

func (c *BitChannel) output() error {
	if c.closed {
		return ErrClosed
	}
	if c.w == nil {
		return errors.New("huffman: write on an input channel")
	}
	return nil
}

func (c *BitChannel) input() error {
	if c.closed {
		return ErrClosed
	}
	if c.r == nil {
		return errors.New("huffman: read on an output channel")
	}
	return nil
}

// WriteBit packs the low bit of bit into the stream.
func (c *BitChannel) WriteBit(bit int) error {
	if err := c.output(); err != nil {
		return err
	}
	if err := c.w.WriteBool(bit&1 != 0); err != nil {
		return fmt.Errorf("huffman: write bit: %w", err)
	}
	c.advance()
	return nil
}

// WriteBits writes the count low bits of value, most significant first.
func (c *BitChannel) WriteBits(value uint64, count int) error {
	if count == 0 {
		return nil
	}
	if count < 0 || count > 64 {
		return fmt.Errorf("%w: %d", ErrBitCount, count)
	}
	if err := c.output(); err != nil {
		return err
	}
	if count < 64 {
		value &= 1<<uint(count) - 1
	}
	if err := c.w.WriteBits(value, uint8(count)); err != nil {
		return fmt.Errorf("huffman: write bits: %w", err)
	}
	for i := 0; i < count; i++ {
		c.advance()
	}
	return nil
}

// WriteByte writes a whole byte. The channel must sit on a byte boundary.
func (c *BitChannel) WriteByte(b byte) error {
	if err := c.output(); err != nil {
		return err
	}
	if c.mask != initialMask {
		return ErrUnaligned
	}
	if err := c.w.WriteByte(b); err != nil {
		return fmt.Errorf("huffman: write byte: %w", err)
	}
	c.byteDone()
	return nil
}

func (c *BitChannel) readErr(op string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEndOfStream
	}
	return fmt.Errorf("huffman: %s: %w", op, err)
}

// ReadBit returns the next bit, 0 or 1.
func (c *BitChannel) ReadBit() (int, error) {
	if err := c.input(); err != nil {
		return 0, err
	}
	loading := c.mask == initialMask
	b, err := c.r.ReadBool()
	if err != nil {
		return 0, c.readErr("read bit", err)
	}
	if loading {
		c.byteDone()
	}
	c.advance()
	if b {
		return 1, nil
	}
	return 0, nil
}

// ReadBits reads count bits, most significant first.
func (c *BitChannel) ReadBits(count int) (uint64, error) {
	if count == 0 {
		return 0, nil
	}
	if count < 0 || count > 64 {
		return 0, fmt.Errorf("%w: %d", ErrBitCount, count)
	}
	var v uint64
	for i := 0; i < count; i++ {
		bit, err := c.ReadBit()
		if err != nil {
			return 0, err
		}
		v = v<<1 | uint64(bit)
	}
	return v, nil
}

// ReadByte reads a whole byte. The channel must sit on a byte boundary.
func (c *BitChannel) ReadByte() (byte, error) {
	if err := c.input(); err != nil {
		return 0, err
	}
	if c.mask != initialMask {
		return 0, ErrUnaligned
	}
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, c.readErr("read byte", err)
	}
	c.byteDone()
	return b, nil
}

// CloseOutput flushes a trailing partial byte, if any. The bits below the
// last written one are zero. The underlying writer is not closed.
func (c *BitChannel) CloseOutput() error {
	if c.closed {
		return nil
	}
	if c.w == nil {
		return errors.New("huffman: CloseOutput on an input channel")
	}
	c.closed = true
	partial := c.mask != initialMask
	if err := c.w.Close(); err != nil {
		return fmt.Errorf("huffman: flush: %w", err)
	}
	if partial {
		c.mask = initialMask
		c.byteDone()
	}
	return nil
}

// CloseInput releases the channel. Buffered but unread bits are dropped.
func (c *BitChannel) CloseInput() error {
	if c.r == nil {
		return errors.New("huffman: CloseInput on an output channel")
	}
	c.closed = true
	return nil
}
