package huffman

import (
	"bufio"
	"fmt"
	"io"
)

// Model is everything derived from one input: its scaled counts, the tree
// built from them and the resulting code table.
type Model struct {
	Counts Counts
	Tree   *Tree
	Codes  *CodeTable
}

// NewModel counts the bytes of src, leaving its read position unchanged.
func NewModel(src io.ReadSeeker) (*Model, error) {
	raw, err := CountBytes(src)
	if err != nil {
		return nil, err
	}
	return newModel(ScaleCounts(raw)), nil
}

func newModel(counts Counts) *Model {
	m := &Model{Counts: counts}
	m.Tree = NewTree(&m.Counts)
	m.Codes = m.Tree.Codes()
	return m
}

type options struct {
	dump     io.Writer
	progress ProgressFunc
	every    int64
}

// Option configures CompressFile and ExpandFile.
type Option func(*options)

// WithDump writes a human readable dump of the model to w before transcoding.
func WithDump(w io.Writer) Option {
	return func(o *options) {
		o.dump = w
	}
}

// WithProgressFunc reports progress on the compressed side of the operation.
func WithProgressFunc(fn ProgressFunc, every int64) Option {
	return func(o *options) {
		o.progress = fn
		o.every = every
	}
}

func collect(opts []Option) *options {
	o := new(options)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) channelOptions() []ChannelOption {
	if o.progress == nil {
		return nil
	}
	return []ChannelOption{WithProgress(o.progress, o.every)}
}

// CompressFile writes the compressed form of src to dst. src is read twice,
// once to count and once to encode.
func CompressFile(src io.ReadSeeker, dst io.Writer, opts ...Option) error {
	o := collect(opts)
	model, err := NewModel(src)
	if err != nil {
		return err
	}

	out := NewOutputChannel(dst, o.channelOptions()...)
	if err := WriteHeader(out, &model.Counts); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if o.dump != nil {
		if err := PrintModel(o.dump, model.Tree, model.Codes); err != nil {
			return err
		}
	}
	if err := CompressData(src, out, model.Codes); err != nil {
		return err
	}
	return out.CloseOutput()
}

// ExpandFile decodes the compressed stream src into dst.
func ExpandFile(src io.Reader, dst io.Writer, opts ...Option) error {
	o := collect(opts)
	in := NewInputChannel(src, o.channelOptions()...)
	defer in.CloseInput()

	counts, err := ReadHeader(in)
	if err != nil {
		return err
	}
	tree := NewTree(&counts)
	if o.dump != nil {
		if err := PrintModel(o.dump, tree, nil); err != nil {
			return err
		}
	}
	return ExpandData(in, dst, tree)
}

// CompressData encodes every byte of src followed by the EndOfStream code.
func CompressData(src io.Reader, out *BitChannel, codes *CodeTable) error {
	br := bufio.NewReader(src)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("huffman: read input: %w", err)
		}
		c := codes[b]
		if c.Bits == 0 {
			return fmt.Errorf("huffman: byte %d has no code", b)
		}
		if err := out.WriteBits(c.Value, c.Bits); err != nil {
			return err
		}
	}
	eos := codes[EndOfStream]
	return out.WriteBits(eos.Value, eos.Bits)
}

// ExpandData walks tree once per symbol until it reaches EndOfStream.
// Bits left in the last byte after that are padding and never read.
func ExpandData(in *BitChannel, dst io.Writer, tree *Tree) error {
	bw := bufio.NewWriter(dst)
	for {
		node := tree.Root
		for !IsLeaf(node) {
			bit, err := in.ReadBit()
			if err != nil {
				return err
			}
			if bit == 1 {
				node = tree.Nodes[node].Child1
			} else {
				node = tree.Nodes[node].Child0
			}
		}
		if node == EndOfStream {
			break
		}
		if err := bw.WriteByte(byte(node)); err != nil {
			return fmt.Errorf("huffman: write output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("huffman: write output: %w", err)
	}
	return nil
}
