package http

import (
	"bytes"
	"net/http"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/input"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
	"github.com/sirupsen/logrus"
)

// LineWebhookHandler struct - Primary/Driving adapter for LINE webhook
type LineWebhookHandler struct {
	service       input.LineWebhookService
	channelSecret string
}

// NewLineWebhookHandler func - Creates new LINE webhook handler
func NewLineWebhookHandler(service input.LineWebhookService, channelSecret string) *LineWebhookHandler {
	return &LineWebhookHandler{
		service:       service,
		channelSecret: channelSecret,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// @Summary LINE Webhook
// @Description Handles webhook events from LINE Messaging API; "/lunch" replies with the lunch summary
// @Tags LINE
// @Accept application/json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /webhook/line [post]
func (h *LineWebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	// The LINE SDK verifies signatures on a net/http request
	httpReq, err := http.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(c.Body()))
	if err != nil {
		logrus.Errorf("Failed to create http request: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal error",
		})
	}
	c.Request().Header.VisitAll(func(key, value []byte) {
		httpReq.Header.Set(string(key), string(value))
	})

	cb, err := webhook.ParseRequest(h.channelSecret, httpReq)
	if err != nil {
		logrus.Errorf("Failed to parse webhook request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid signature or request",
		})
	}

	domainEvents := make([]domain.LineWebhookEvent, 0, len(cb.Events))
	for _, event := range cb.Events {
		if domainEvent := convertToDomainEvent(event); domainEvent != nil {
			domainEvents = append(domainEvents, *domainEvent)
		}
	}

	if err := h.service.HandleWebhook(c.UserContext(), domain.LineWebhookRequest{Events: domainEvents}); err != nil {
		logrus.Errorf("Failed to handle webhook: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to process webhook",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "success",
	})
}

// convertToDomainEvent - Converts LINE SDK event to domain event; unsupported events give nil
func convertToDomainEvent(event webhook.EventInterface) *domain.LineWebhookEvent {
	switch e := event.(type) {
	case webhook.MessageEvent:
		text, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			logrus.Infof("Ignoring message type: %T", e.Message)
			return nil
		}
		return &domain.LineWebhookEvent{
			Type:       domain.LineEventTypeMessage,
			ReplyToken: e.ReplyToken,
			Source:     convertSource(e.Source),
			Message: &domain.LineMessage{
				ID:   text.Id,
				Type: domain.LineMessageTypeText,
				Text: text.Text,
			},
		}
	case webhook.FollowEvent:
		return &domain.LineWebhookEvent{
			Type:       domain.LineEventTypeFollow,
			ReplyToken: e.ReplyToken,
			Source:     convertSource(e.Source),
		}
	default:
		logrus.Infof("Unsupported event type: %T", event)
		return nil
	}
}

func convertSource(source webhook.SourceInterface) domain.LineSource {
	switch s := source.(type) {
	case webhook.UserSource:
		return domain.LineSource{UserID: s.UserId}
	case webhook.GroupSource:
		return domain.LineSource{UserID: s.UserId, GroupID: s.GroupId}
	case webhook.RoomSource:
		return domain.LineSource{UserID: s.UserId, RoomID: s.RoomId}
	default:
		return domain.LineSource{}
	}
}
