package errors

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/apartments/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound       = "NOT_FOUND"
	ErrBadRequest     = "BAD_REQUEST"
	ErrInternalServer = "INTERNAL_SERVER_ERROR"
	ErrValidation     = "VALIDATION_ERROR"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// RegisterFieldNames makes gin's validator report fields by their json,
// form or uri tag instead of the Go field name.
func RegisterFieldNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form", "uri"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// NotFound responds 404 with a NOT_FOUND envelope.
func NotFound(c *gin.Context, message string) {
	respond(c, http.StatusNotFound, ErrorDetail{Code: ErrNotFound, Message: message}, nil)
}

// BadRequest responds 400 with a BAD_REQUEST envelope and optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	respond(c, http.StatusBadRequest, ErrorDetail{Code: ErrBadRequest, Message: message, Details: details}, nil)
}

// BindingError responds to a failed ShouldBind* call. Validator failures
// become VALIDATION_ERROR responses; anything else (malformed JSON, wrong
// value types, unparsable numbers) is a BAD_REQUEST carrying message.
func BindingError(c *gin.Context, message string, err error) {
	var validationErrors validator.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		ValidationError(c, validationErrors)
		return
	}

	BadRequest(c, message, map[string]interface{}{
		"reason": err.Error(),
	})
}

// InternalServerError responds 500. The cause is logged; the client only sees message.
func InternalServerError(c *gin.Context, message string, err error) {
	if err == nil {
		err = stderrors.New(message)
	}
	respond(c, http.StatusInternalServerError, ErrorDetail{Code: ErrInternalServer, Message: message}, err)
}

// ValidationError responds 400 with one message per failed field, keyed
// by the name RegisterFieldNames configured (the Go field name otherwise).
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{}, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[fieldErr.Field()] = formatValidationError(fieldErr)
	}

	respond(c, http.StatusBadRequest, ErrorDetail{
		Code:    ErrValidation,
		Message: "Validation failed for one or more fields",
		Details: details,
	}, nil)
}

// respond logs the failure on the request logger, if any, and writes the envelope.
// A non-nil cause is logged at error level, everything else at warn.
func respond(c *gin.Context, status int, detail ErrorDetail, cause error) {
	detail.RequestID = middleware.GetRequestID(c)

	if log := middleware.GetLogger(c); log != nil {
		fields := map[string]interface{}{
			"code":    detail.Code,
			"message": detail.Message,
			"status":  status,
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
		}
		if detail.Details != nil {
			fields["details"] = detail.Details
		}

		if cause != nil {
			log.Error("Request failed", cause, fields)
		} else {
			log.Warn("Request rejected", fields)
		}
	}

	c.JSON(status, ErrorResponse{Error: detail})
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "lt":
		return "Must be less than " + err.Param()
	case "lte":
		return "Must be less than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "numeric":
		return "Must be a number"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
