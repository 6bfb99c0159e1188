package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jinford/catalog/internal/module/catalog/domain"
)

// errorResponse はエラーレスポンスです
type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor はエラーをHTTPステータスと表示用メッセージに変換します
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrPageOutOfRange):
		return http.StatusNotFound, "Invalid page."
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Not found."
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Service temporarily unavailable."
	default:
		return http.StatusInternalServerError, "Internal server error."
	}
}

func writeError(c *gin.Context, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "Request failed",
			"path", c.Request.URL.Path,
			"status", status,
			"error", err,
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorResponse{Detail: detail})
}
