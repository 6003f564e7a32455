package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondMappedError picks the HTTP status from a sentinel lookup table,
// defaulting to 500 for anything unmapped.
func RespondMappedError(c *gin.Context, err error, statusByKind map[error]int) {
	for kind, code := range statusByKind {
		if errors.Is(err, kind) {
			RespondError(c, code, err)
			return
		}
	}
	RespondError(c, http.StatusInternalServerError, err)
}
