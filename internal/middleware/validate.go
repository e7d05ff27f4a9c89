package middleware

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/bilgisen/tldr-relay/internal/logger"
)

const queryLocalsKey = "queryParams"

var validate = validator.New()

// ValidateQuery parses the query string into a fresh T for every request and
// validates it. The result is available through Query[T].
func ValidateQuery[T any]() fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := new(T)
		if err := c.QueryParser(params); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters: "+err.Error())
		}

		if err := validate.Struct(params); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
			}
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid query parameters: "+strings.Join(fields, ", "))
		}

		c.Locals(queryLocalsKey, params)
		return c.Next()
	}
}

// Query returns the parameters validated by ValidateQuery[T].
func Query[T any](c *fiber.Ctx) *T {
	params, _ := c.Locals(queryLocalsKey).(*T)
	if params == nil {
		params = new(T)
	}
	return params
}

// ErrorHandler answers errors in plain text, the format of every route here.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.Get().Error().
			Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", code).
			Msg("HTTP error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(code).SendString(message)
}
