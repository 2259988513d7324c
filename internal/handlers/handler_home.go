package handlers

import (
	"net/http"

	"github.com/SscSPs/nonprofit_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server and the active store driver.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{
			"message":     "Nonprofit Ledger API v1",
			"storeDriver": cfg.StoreDriver,
		})
	}
}

// registerStatusRoutes registers the public health and status routes.
func registerStatusRoutes(r *gin.Engine, cfg *config.Config) {
	r.GET("/", getHome(cfg))
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
}
