package httpdto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"sync"

	disol_errors "github.com/pr-poehali-dev/ai-programmer-disol/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// SetupValidator makes validation errors name fields by their json/form tag.
func SetupValidator() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name != "" && name != "-" {
					return name
				}
			}
			return fld.Name
		})
	})
}

// BindJSON decodes the request body strictly into obj and validates it.
// An empty body decodes as {} so missing fields are reported by name.
func BindJSON(c *gin.Context, obj interface{}) error {
	SetupValidator()

	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			return disol_errors.Validation("failed to read request body")
		}
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		return disol_errors.Validation("invalid request body: %s", describeDecodeError(err))
	}
	if dec.More() {
		return disol_errors.Validation("invalid request body: unexpected data after JSON object")
	}

	if err := binding.Validator.ValidateStruct(obj); err != nil {
		return validationError(err)
	}
	return nil
}

// BindQuery maps and validates query parameters into obj.
func BindQuery(c *gin.Context, obj interface{}) error {
	SetupValidator()

	if err := c.ShouldBindQuery(obj); err != nil {
		return validationError(err)
	}
	return nil
}

func describeDecodeError(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return fmt.Sprintf("%s has an invalid type", typeErr.Field)
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return "malformed JSON"
	}
	return strings.TrimPrefix(err.Error(), "json: ")
}

func validationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return disol_errors.Validation("invalid request: %s", err.Error())
	}
	msgs := FormatValidationErrors(validationErrs)
	fields := make([]string, 0, len(msgs))
	for field := range msgs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, msgs[field])
	}
	return disol_errors.Validation("%s", strings.Join(parts, "; "))
}

// FormatValidationErrors converts validation errors to one message per field.
func FormatValidationErrors(errs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "oneof":
			out[field] = fmt.Sprintf("%s must be one of %s", field, strings.ReplaceAll(e.Param(), " ", ", "))
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return out
}
