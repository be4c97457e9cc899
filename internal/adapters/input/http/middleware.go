package http

import (
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// BearerAuth returns middleware that admits only requests carrying
// "Authorization: Bearer <token>". An empty configured token rejects everything.
func BearerAuth(token string) fiber.Handler {
	v := validator.New()
	return func(c *fiber.Ctx) error {
		if err := checkBearer(c, v, token); err != nil {
			logrus.Warnf("Rejected %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(withMessage(Unauthorized, err.Error()))
		}
		return c.Next()
	}
}

func checkBearer(c *fiber.Ctx, v validator.Validator, token string) error {
	if token == "" {
		return fmt.Errorf("%w: authorization token is not configured", domain.ErrInvalidConfig)
	}

	header := AuthorizationHeader{Authorization: c.Get(fiber.HeaderAuthorization)}
	if err := v.ValidateStruct(header); err != nil {
		return domain.ErrUnauthorized
	}
	presented, ok := header.Token()
	if !ok || subtle.ConstantTimeCompare([]byte(presented), []byte(token)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}

// ErrorHandler renders any error that escapes a handler, including recovered panics, as JSON
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	if code >= fiber.StatusInternalServerError {
		logrus.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(code).JSON(ResponseBody{Status: Status{Code: code, Message: []string{err.Error()}}})
}
