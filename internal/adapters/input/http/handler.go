package http

import (
	"errors"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/input"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP
type HTTPHandler struct {
	lunch    input.LunchService
	notifier input.LunchNotifier
	store    output.SessionStore
}

// New func - Creates new HTTP handler
func New(lunch input.LunchService, notifier input.LunchNotifier, store output.SessionStore) *HTTPHandler {
	return &HTTPHandler{
		lunch:    lunch,
		notifier: notifier,
		store:    store,
	}
}

// HealthCheck godoc
// @Summary Health check
// @Description Reports whether the session store is reachable
// @Tags HEALTH
// @Produce json
// @Success 200 {object} ResponseBody
// @Failure 503 {object} ResponseBody
// @Router /health [get]
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	if err := hdl.store.Ping(c.UserContext()); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(ResponseBody{Status: ServiceUnavailable})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: ""})
}

// GetLunch godoc
// @Summary Lunch summary
// @Description Returns the lunch ordered for today, or for tomorrow after the cutoff hour, as plain text
// @Tags LUNCH
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "Cafe A: Sandwich, Soup"
// @Failure 401 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /v1/api/lunch [get]
func (hdl *HTTPHandler) GetLunch(c *fiber.Ctx) error {
	text, err := hdl.lunch.GetLunchSummary(c.UserContext())
	if err != nil {
		return configError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(fiber.StatusOK).SendString(text)
}

// NotifyLunch godoc
// @Summary Push lunch summary to LINE
// @Description Looks up the lunch summary and pushes it to the configured LINE user
// @Tags LUNCH
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ResponseBody{data=LunchResponse}
// @Failure 401 {object} ResponseBody
// @Failure 500 {object} ResponseBody
// @Router /v1/api/lunch/notify [post]
func (hdl *HTTPHandler) NotifyLunch(c *fiber.Ctx) error {
	text, err := hdl.notifier.NotifyLunch(c.UserContext())
	if err != nil {
		return configError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: LunchResponse{Summary: text}})
}

// configError answers 500 JSON for configuration problems and hands anything else to the ErrorHandler
func configError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidConfig) {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(withMessage(InternalServerError, err.Error()))
	}
	return err
}
