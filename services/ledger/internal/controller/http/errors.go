package http

import (
	"net/http"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// writeError maps ledger errors to their status and kind. Unknown errors are logged and hidden.
func writeError(c *gin.Context, log *logger.Logger, err error) {
	status := entity.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(status, ErrorResponse{Error: "internal server error", Kind: "Internal"})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Kind: entity.ErrorKind(err)})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: entity.ErrorKind(entity.ErrInvalidRequest)})
}
