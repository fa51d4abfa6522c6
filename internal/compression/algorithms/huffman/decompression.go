package huffman

import (
	"bytes"
	"io"
)

type DecompressionWriter struct {
	core *streamCore
}
type DecompressionReader struct {
	core *streamCore
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	return dr.core.read(data)
}

func (dr *DecompressionReader) Close() error {
	return dr.core.closeOutput()
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	return dw.core.write(data)
}

// Close expands everything written so far. A corrupt stream is reported
// here and again by every Read on the paired reader.
func (dw *DecompressionWriter) Close() error {
	return dw.core.closeInput()
}

func NewDecompressionReaderAndWriter(opts ...Option) (io.ReadCloser, io.WriteCloser) {
	core := newStreamCore(func(input []byte, output io.Writer) error {
		return ExpandFile(bytes.NewReader(input), output, opts...)
	})
	return &DecompressionReader{core: core}, &DecompressionWriter{core: core}
}
