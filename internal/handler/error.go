package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/logger"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/metrics"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/middleware"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/repository"
	"github.com/snnyvrz/shelfshare/apps/catalog-api/internal/validation"
)

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  []validation.FieldError{},
	})
}

func writeFieldErrors(c *gin.Context, status int, code, message string, fields ...validation.FieldError) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  fields,
	})
}

// writeInternalError logs err with the request id and answers 500.
func writeInternalError(c *gin.Context, code, message string, err error) {
	fields := []zap.Field{
		zap.String("code", code),
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("route", c.FullPath()),
		zap.Error(err),
	}
	if name := repository.ConstraintName(err); name != "" {
		fields = append(fields, zap.String("constraint", name))
	}
	logger.Error(message, fields...)

	writeError(c, http.StatusInternalServerError, code, message)
}

// trackMutation counts a create, update or delete by the status the handler
// answered with. Call it deferred.
func trackMutation(c *gin.Context, entity, op string) {
	status := c.Writer.Status()

	outcome := metrics.OutcomeSuccess
	switch {
	case status >= http.StatusInternalServerError:
		outcome = metrics.OutcomeFailed
	case status >= http.StatusBadRequest:
		outcome = metrics.OutcomeRejected
	}

	metrics.IncMutation(entity, op, outcome)
}
