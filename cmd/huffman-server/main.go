// Command huffman-server exposes the Huffman codec over HTTP.
package main

import (
	"log"

	"github.com/adilg123/static-huffman/internal/api"
	"github.com/adilg123/static-huffman/internal/config"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize
	api.SetupRoutes(router, cfg)

	log.Printf("huffman-server (%s) listening on :%s", cfg.Environment, cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
