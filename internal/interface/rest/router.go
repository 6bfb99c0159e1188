package rest

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// NewRouter は商品APIのルーティングを設定した gin.Engine を返します
func NewRouter(h *ProductHandler, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(recovery(log), accessLog(log))

	r.GET("/products", h.ListProducts)
	r.GET("/products/:id", h.GetProduct)
	r.GET("/healthz", h.Health)

	return r
}
