package compression

import (
	"fmt"
	"io"

	"github.com/adilg123/static-huffman/internal/compression/algorithms/huffman"
)

// SupportedAlgorithms contains all supported compression algorithms
var SupportedAlgorithms = []string{
	"huffman",
}

// DefaultAlgorithm is used when a request does not name one
const DefaultAlgorithm = "huffman"

// Options contains compression/decompression options
type Options struct {
	Algorithm string
	// Dump receives a description of the model, if set
	Dump io.Writer
}

// Stats contains compression statistics
type Stats struct {
	OriginalSize     int64
	ProcessedSize    int64
	CompressionRatio float64
	Algorithm        string
}

// NewStats computes the ratio of processed to original size in percent
func NewStats(algorithm string, originalSize, processedSize int64) *Stats {
	stats := &Stats{
		OriginalSize:  originalSize,
		ProcessedSize: processedSize,
		Algorithm:     algorithm,
	}
	if originalSize > 0 {
		stats.CompressionRatio = float64(processedSize) / float64(originalSize) * 100
	}
	return stats
}

// Report writes the post-run size summary
func (s *Stats) Report(w io.Writer) error {
	_, err := fmt.Fprintf(w, "Input bytes:        %d\nOutput bytes:       %d\nCompression ratio:  %.1f%%\n",
		s.OriginalSize, s.ProcessedSize, s.CompressionRatio)
	return err
}

// AlgorithmFactory defines the interface for compression algorithms
type AlgorithmFactory interface {
	NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
	NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser)
}

// factoryMap maps algorithm names to their factories
var factoryMap = map[string]AlgorithmFactory{
	"huffman": &HuffmanFactory{},
}

// HuffmanFactory builds static order-0 Huffman streams
type HuffmanFactory struct{}

func (f *HuffmanFactory) NewCompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return huffman.NewCompressionReaderAndWriter(huffmanOptions(options)...)
}
func (f *HuffmanFactory) NewDecompressionReaderAndWriter(options Options) (io.ReadCloser, io.WriteCloser) {
	return huffman.NewDecompressionReaderAndWriter(huffmanOptions(options)...)
}

func huffmanOptions(options Options) []huffman.Option {
	if options.Dump == nil {
		return nil
	}
	return []huffman.Option{huffman.WithDump(options.Dump)}
}

// IsValidAlgorithm checks if the provided algorithm is supported
func IsValidAlgorithm(algorithm string) bool {
	_, exists := factoryMap[algorithm]
	return exists
}

// GetSupportedAlgorithms returns a list of supported algorithms
func GetSupportedAlgorithms() []string {
	return append([]string{}, SupportedAlgorithms...)
}

// Compress compresses data using the specified algorithm
func Compress(data []byte, options Options) ([]byte, *Stats, error) {
	if !IsValidAlgorithm(options.Algorithm) {
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", options.Algorithm)
	}

	factory := factoryMap[options.Algorithm]
	reader, writer := factory.NewCompressionReaderAndWriter(options)

	compressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("compression failed: %w", err)
	}

	return compressedData, NewStats(options.Algorithm, int64(len(data)), int64(len(compressedData))), nil
}

// Decompress decompresses data using the specified algorithm
func Decompress(data []byte, options Options) ([]byte, *Stats, error) {
	if !IsValidAlgorithm(options.Algorithm) {
		return nil, nil, fmt.Errorf("unsupported algorithm: %s", options.Algorithm)
	}

	factory := factoryMap[options.Algorithm]
	reader, writer := factory.NewDecompressionReaderAndWriter(options)

	decompressedData, err := processData(data, reader, writer)
	if err != nil {
		return nil, nil, fmt.Errorf("decompression failed: %w", err)
	}

	stats := &Stats{
		OriginalSize:  int64(len(data)),
		ProcessedSize: int64(len(decompressedData)),
		Algorithm:     options.Algorithm,
	}
	// the ratio is always compressed over expanded size
	if len(decompressedData) > 0 {
		stats.CompressionRatio = float64(len(data)) / float64(len(decompressedData)) * 100
	}
	return decompressedData, stats, nil
}

// processData writes the whole input, closes the writer so the transcoding
// runs, then drains the reader
func processData(inputData []byte, reader io.ReadCloser, writer io.WriteCloser) ([]byte, error) {
	defer reader.Close()

	if _, err := writer.Write(inputData); err != nil {
		return nil, fmt.Errorf("failed to write data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return io.ReadAll(reader)
}
