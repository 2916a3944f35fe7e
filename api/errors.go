package api

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Domenick1991/tripsearch/internal/domain"
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json/form names,
// so binding errors read like the request payload.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
	})
}

// fieldErrors groups messages by request field.
type fieldErrors map[string][]string

func writeValidation(c *gin.Context, errs fieldErrors, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": message, "errors": errs})
}

// writeBindError answers a request whose payload could not be bound.
func writeBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	errs := fieldErrors{}
	var first string
	for _, fe := range verrs {
		field := fieldPath(fe)
		msg := fieldMessage(field, fe)
		if first == "" {
			first = msg
		}
		errs[field] = append(errs[field], msg)
	}
	writeValidation(c, errs, first)
}

// writeError maps service errors to responses.
func writeError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidation(c, fieldErrors{verr.Field: {verr.Message}}, verr.Message)
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// fieldPath drops the struct name from the namespace: "searchRequest.legs[1].origin"
// becomes "legs[1].origin".
func fieldPath(fe validator.FieldError) string {
	if _, path, ok := strings.Cut(fe.Namespace(), "."); ok {
		return path
	}
	return fe.Field()
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_unless", "required_if":
		return field + " is required"
	case "oneof":
		return field + " must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.Slice {
			return field + " must have at least " + fe.Param() + " items"
		}
		return field + " must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return field + " must not have more than " + fe.Param() + " items"
		}
		if fe.Kind() == reflect.String {
			return field + " must not be longer than " + fe.Param() + " characters"
		}
		return field + " must not be greater than " + fe.Param()
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	default:
		return field + " is invalid"
	}
}
