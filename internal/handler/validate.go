package handler

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface. Field names in error output come from the json tag so clients
// see the keys they actually sent.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.validate.Struct(i)
}

// failValidation turns validator errors into a 400 whose payload is a
// field -> message map. Non-validator errors get a generic message.
func failValidation(c echo.Context, err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return c.JSON(http.StatusBadRequest, Response{
		Status:  false,
		Message: "validation failed",
		Payload: fields,
	})
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be %s or more", fe.Param())
	case "lte":
		return fmt.Sprintf("must be %s or less", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return "is invalid"
	}
}

// bindAndValidate decodes the JSON body into dst and runs validation,
// responding itself on failure. Returns false when the request was rejected.
func bindAndValidate(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, fail(c, http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(dst); err != nil {
		return false, failValidation(c, err)
	}
	return true, nil
}
