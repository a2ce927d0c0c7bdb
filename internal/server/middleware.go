package server

import (
	"log/slog"

	"github.com/alkime/vaultlaunch/internal/config"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
)

// setupSecurityMiddleware configures and applies security middleware to the router
func setupSecurityMiddleware(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	// HSTS only outside development
	stsSeconds := int64(0)
	if !cfg.IsDevelopment() {
		stsSeconds = int64(cfg.HSTSMaxAge)
	}

	secureMiddleware := secure.New(secure.Config{
		AllowedHosts:          []string{"127.0.0.1:" + cfg.Port, "localhost:" + cfg.Port},
		STSSeconds:            stsSeconds,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: config.BuildCSP(cfg.CSPMode),
		IsDevelopment:         cfg.IsDevelopment(),
	})
	router.Use(secureMiddleware)

	logger.Debug("Configured security middleware",
		"hsts_enabled", stsSeconds > 0,
		"csp_mode", cfg.CSPMode,
	)
}
