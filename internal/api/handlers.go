package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/adilg123/static-huffman/internal/compression"
	"github.com/adilg123/static-huffman/internal/compression/algorithms/huffman"
	"github.com/adilg123/static-huffman/internal/config"
	"github.com/gin-gonic/gin"
)

// TranscodeRequest represents the compression and decompression request payload
type TranscodeRequest struct {
	Algorithm string `form:"algorithm"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SymbolInfo describes the code assigned to one symbol
type SymbolInfo struct {
	Symbol int    `json:"symbol"`
	Count  uint32 `json:"count"`
	Code   string `json:"code"`
	Bits   int    `json:"bits"`
}

// ModelResponse is the JSON form of the model built for an uploaded file
type ModelResponse struct {
	Filename string             `json:"filename"`
	Size     int                `json:"size"`
	Root     int                `json:"root"`
	Symbols  []SymbolInfo       `json:"symbols"`
	Nodes    []huffman.NodeInfo `json:"nodes"`
}

// Handler serves the compression endpoints
type Handler struct {
	cfg *config.Config
}

// NewHandler returns a handler enforcing the limits in cfg
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

func abortWithError(c *gin.Context, code int, title, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Error:   title,
		Code:    code,
		Message: message,
	})
}

// readUpload validates the request and returns the uploaded file
func (h *Handler) readUpload(c *gin.Context) (string, string, []byte, bool) {
	var req TranscodeRequest
	if err := c.ShouldBind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return "", "", nil, false
	}
	if req.Algorithm == "" {
		req.Algorithm = compression.DefaultAlgorithm
	}

	// Validate algorithm
	if !compression.IsValidAlgorithm(req.Algorithm) {
		abortWithError(c, http.StatusBadRequest, "Invalid algorithm",
			fmt.Sprintf("Supported algorithms: %v", compression.GetSupportedAlgorithms()))
		return "", "", nil, false
	}

	// Get uploaded file
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "File upload error", "No file provided or file upload failed")
		return "", "", nil, false
	}
	defer file.Close()

	// Check file size
	if header.Size > h.cfg.MaxFileSize {
		abortWithError(c, http.StatusRequestEntityTooLarge, "File too large",
			fmt.Sprintf("Maximum file size is %d bytes", h.cfg.MaxFileSize))
		return "", "", nil, false
	}

	fileContent, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "File read error", "Failed to read uploaded file")
		return "", "", nil, false
	}
	return req.Algorithm, header.Filename, fileContent, true
}

func setStatsHeaders(c *gin.Context, stats *compression.Stats) {
	c.Header("X-Original-Size", strconv.FormatInt(stats.OriginalSize, 10))
	c.Header("X-Processed-Size", strconv.FormatInt(stats.ProcessedSize, 10))
	c.Header("X-Compression-Ratio", strconv.FormatFloat(stats.CompressionRatio, 'f', 2, 64))
}

// HandleCompress handles file compression requests
func (h *Handler) HandleCompress(c *gin.Context) {
	algorithm, filename, fileContent, ok := h.readUpload(c)
	if !ok {
		return
	}

	compressedData, stats, err := compression.Compress(fileContent, compression.Options{Algorithm: algorithm})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Compression failed", err.Error())
		return
	}

	// Set response headers for file download
	setStatsHeaders(c, stats)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_compressed.%s", getBaseFilename(filename), getExtensionForAlgorithm(algorithm)))
	c.Data(http.StatusOK, "application/octet-stream", compressedData)
}

// HandleDecompress handles file decompression requests
func (h *Handler) HandleDecompress(c *gin.Context) {
	algorithm, filename, fileContent, ok := h.readUpload(c)
	if !ok {
		return
	}

	decompressedData, stats, err := compression.Decompress(fileContent, compression.Options{Algorithm: algorithm})
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, huffman.ErrInvalidHeader) || errors.Is(err, huffman.ErrUnexpectedEndOfStream) {
			code = http.StatusBadRequest
		}
		abortWithError(c, code, "Decompression failed", err.Error())
		return
	}

	setStatsHeaders(c, stats)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_decompressed", getBaseFilename(filename)))
	c.Data(http.StatusOK, "application/octet-stream", decompressedData)
}

// HandleModel returns the frequency model, tree and codes for an uploaded file
func (h *Handler) HandleModel(c *gin.Context) {
	_, filename, fileContent, ok := h.readUpload(c)
	if !ok {
		return
	}

	model, err := huffman.NewModel(bytes.NewReader(fileContent))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Model failed", err.Error())
		return
	}

	resp := ModelResponse{
		Filename: filename,
		Size:     len(fileContent),
		Root:     model.Tree.Root,
		Nodes:    model.Tree.Snapshot(),
	}
	for symbol, count := range model.Counts {
		if count == 0 {
			continue
		}
		code := model.Codes[symbol]
		resp.Symbols = append(resp.Symbols, SymbolInfo{
			Symbol: symbol,
			Count:  count,
			Code:   code.String(),
			Bits:   code.Bits,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// HandleInfo provides information about supported algorithms
func (h *Handler) HandleInfo(c *gin.Context) {
	info := gin.H{
		"service": "Static Huffman Compression Tool",
		"version": "2.0.0",
		"algorithms": gin.H{
			"supported": compression.GetSupportedAlgorithms(),
			"descriptions": map[string]string{
				"huffman": "Static order-0 Huffman coding with a run-length encoded frequency header",
			},
		},
		"limits": gin.H{
			"max_file_size": fmt.Sprintf("%d bytes (%.1f MB)", h.cfg.MaxFileSize, float64(h.cfg.MaxFileSize)/(1024*1024)),
		},
		"endpoints": gin.H{
			"compress":   "POST /compress - Upload file for compression",
			"decompress": "POST /decompress - Upload file for decompression",
			"model":      "POST /model - Inspect the Huffman model of a file",
			"info":       "GET /info - Get service information",
			"health":     "GET /health - Health check",
		},
	}

	c.JSON(http.StatusOK, info)
}

// HandleHealth provides a simple health check endpoint
func (h *Handler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "compression-service",
	})
}

// Helper functions
func getBaseFilename(filename string) string {
	if filename == "" {
		return "file"
	}

	// Remove extension
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[:i]
		}
	}
	return filename
}

func getExtensionForAlgorithm(algorithm string) string {
	extensions := map[string]string{
		"huffman": "huff",
	}

	if ext, exists := extensions[algorithm]; exists {
		return ext
	}
	return "compressed"
}
