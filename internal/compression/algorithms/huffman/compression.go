package huffman

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

var errInputOpen = errors.New("huffman: input not closed yet")

type CompressionWriter struct {
	core *streamCore
}
type CompressionReader struct {
	core *streamCore
}

// streamCore buffers everything written to the writer half and transcodes it
// in one go when the writer is closed.
type streamCore struct {
	isInputBufferClosed bool
	lock                sync.Mutex
	inputBuffer         *bytes.Buffer
	outputBuffer        *bytes.Buffer
	transcode           func(input []byte, output io.Writer) error
	err                 error
}

func (c *streamCore) read(data []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.isInputBufferClosed {
		return 0, errInputOpen
	}
	if c.err != nil {
		return 0, c.err
	}
	return c.outputBuffer.Read(data)
}

func (c *streamCore) write(data []byte) (int, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.isInputBufferClosed {
		return 0, ErrClosed
	}
	return c.inputBuffer.Write(data)
}

func (c *streamCore) closeInput() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.isInputBufferClosed {
		return c.err
	}
	c.isInputBufferClosed = true
	c.err = c.transcode(c.inputBuffer.Bytes(), c.outputBuffer)
	c.inputBuffer.Reset()
	return c.err
}

func (c *streamCore) closeOutput() error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.inputBuffer.Reset()
	c.outputBuffer.Reset()
	return nil
}

func newStreamCore(transcode func([]byte, io.Writer) error) *streamCore {
	return &streamCore{
		inputBuffer:  new(bytes.Buffer),
		outputBuffer: new(bytes.Buffer),
		transcode:    transcode,
	}
}

func (cr *CompressionReader) Read(data []byte) (int, error) {
	return cr.core.read(data)
}

func (cr *CompressionReader) Close() error {
	return cr.core.closeOutput()
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	return cw.core.write(data)
}

// Close compresses everything written so far and makes it available to the
// paired reader.
func (cw *CompressionWriter) Close() error {
	return cw.core.closeInput()
}

func NewCompressionReaderAndWriter(opts ...Option) (io.ReadCloser, io.WriteCloser) {
	core := newStreamCore(func(input []byte, output io.Writer) error {
		return CompressFile(bytes.NewReader(input), output, opts...)
	})
	return &CompressionReader{core: core}, &CompressionWriter{core: core}
}
