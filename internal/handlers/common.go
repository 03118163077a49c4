package handlers

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/cyphera/cyphera-relay/internal/helpers"
	"github.com/cyphera/cyphera-relay/internal/logger"
	"github.com/cyphera/cyphera-relay/internal/middleware"
	"github.com/cyphera/cyphera-relay/internal/services"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError logs the error and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
	}
	if statusCode >= http.StatusInternalServerError {
		logger.Error(message, fields...)
	} else {
		logger.Debug(message, fields...)
	}
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleServiceError maps a service error to its HTTP status
func handleServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	kind := services.KindOf(err)
	status := statusForKind(kind)
	if errors.Is(err, services.ErrMetaCallFailed) {
		status = http.StatusBadGateway
	}

	message := services.Reason(err)
	if status == http.StatusInternalServerError {
		message = "Internal server error"
	}
	_ = c.Error(err)

	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("kind", string(kind)),
		zap.String("correlation_id", middleware.GetCorrelationID(c)),
	}
	if kind == "" {
		logger.Error("Request failed", fields...)
	} else {
		logger.Debug("Request rejected", fields...)
	}
	c.JSON(status, ErrorResponse{Error: message, Kind: string(kind)})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindResource:
		return http.StatusConflict
	case services.KindLimit:
		return http.StatusUnprocessableEntity
	case services.KindAvailability:
		return http.StatusServiceUnavailable
	case services.KindAuthorization:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// sendSuccess sends data as JSON
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage sends a success message
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList sends a list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}

// requireCaller returns the authenticated caller or aborts with 401
func requireCaller(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return common.Address{}, false
	}
	return caller, true
}

// addressParam parses the :address path parameter
func addressParam(c *gin.Context) (common.Address, bool) {
	address, err := helpers.ParseAddress(c.Param("address"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid address", err)
		return common.Address{}, false
	}
	return address, true
}

// bindJSON decodes the request body or responds with 400
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// parseAmountField parses a decimal amount from a request field
func parseAmountField(c *gin.Context, field, raw string) (*big.Int, bool) {
	amount, err := helpers.ParseAmount(raw)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid "+field, err)
		return nil, false
	}
	return amount, true
}

func queryInt(c *gin.Context, key string, def, max int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		sendError(c, http.StatusBadRequest, "Invalid "+key, err)
		return 0, false
	}
	if n > max {
		n = max
	}
	return n, true
}
