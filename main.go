package main

import (
	"flag"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Danishprabhu04/image-encrypt/config"
	"github.com/Danishprabhu04/image-encrypt/handlers"
	"github.com/Danishprabhu04/image-encrypt/logging"
)

func main() {
	configPath := flag.String("config", os.Getenv("DNACIPHER_CONFIG"), "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.New(logging.Options{}).Fatal().Err(err).Msg("failed to load config")
	}
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	router := newRouter(cfg, handlers.NewCipherHandler(cfg, logger), logging.GinLogger(logger))

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	logger.Info().Msg("API endpoints:")
	logger.Info().Msg("  POST /api/v1/cipher/encrypt - Encrypt an image (returns encrypted PNG, key in X-Encryption-Key)")
	logger.Info().Msg("  POST /api/v1/cipher/decrypt - Decrypt an encrypted PNG with its key")
	logger.Info().Msg("  POST /api/v1/cipher/analyze - Entropy report for an image")
	logger.Info().Msg("  GET  /api/v1/health         - Health check")

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}

func newRouter(cfg config.Config, h *handlers.CipherHandler, accessLog gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(accessLog, gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"}
	corsConfig.ExposeHeaders = []string{
		handlers.HeaderEncryptionKey,
		handlers.HeaderEntropy,
		handlers.HeaderNPCR,
		handlers.HeaderUACI,
		handlers.HeaderPSNR,
		logging.RequestIDHeader,
		"Content-Disposition",
	}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	// API Routes
	api := router.Group("/api/v1")
	{
		api.GET("/health", h.HealthCheck)

		cipher := api.Group("/cipher")
		{
			cipher.POST("/encrypt", h.Encrypt)
			cipher.POST("/decrypt", h.Decrypt)
			cipher.POST("/analyze", h.Analyze)
		}
	}

	// Results are streamed back from each endpoint; nothing is written to disk
	return router
}
