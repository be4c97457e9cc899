package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/input"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/sirupsen/logrus"
)

const helpText = "Available commands:\n/lunch - Show the lunch you have ordered\n/help - Show this message"

var _ input.LineWebhookService = (*LineWebhookService)(nil)

// LineWebhookService struct - Application service implementing LINE webhook use cases
type LineWebhookService struct {
	lineClient output.LineClient
	lunch      input.LunchService
}

// NewLineWebhookService func - Creates new LINE webhook service
func NewLineWebhookService(lineClient output.LineClient, lunch input.LunchService) *LineWebhookService {
	return &LineWebhookService{
		lineClient: lineClient,
		lunch:      lunch,
	}
}

// HandleWebhook func - Use case: Handle incoming webhook events from LINE
func (s *LineWebhookService) HandleWebhook(ctx context.Context, request domain.LineWebhookRequest) error {
	for _, event := range request.Events {
		logrus.Infof("Received LINE event: type=%s, userID=%s", event.Type, event.Source.UserID)

		switch event.Type {
		case domain.LineEventTypeMessage:
			if err := s.handleMessageEvent(ctx, event); err != nil {
				logrus.Errorf("Failed to handle message event: %v", err)
				return err
			}

		case domain.LineEventTypeFollow:
			if err := s.handleFollowEvent(event); err != nil {
				logrus.Errorf("Failed to handle follow event: %v", err)
				return err
			}

		default:
			logrus.Infof("Unhandled event type: %s", event.Type)
		}
	}

	return nil
}

// handleMessageEvent - replies to text commands
func (s *LineWebhookService) handleMessageEvent(ctx context.Context, event domain.LineWebhookEvent) error {
	if event.Message == nil {
		return nil
	}

	if event.Message.Type != domain.LineMessageTypeText {
		logrus.Infof("Ignoring non-text message: type=%s", event.Message.Type)
		return nil
	}

	reply, err := s.handleCommand(ctx, event.Message.Text)
	if err != nil {
		return err
	}
	if reply == "" || event.ReplyToken == "" {
		return nil
	}

	replyReq := domain.LineReplyMessageRequest{
		ReplyToken: event.ReplyToken,
		Messages: []domain.LineOutgoingMessage{
			{Type: domain.LineMessageTypeText, Text: reply},
		},
	}
	if _, err := s.lineClient.ReplyMessage(replyReq); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}

	return nil
}

// handleCommand returns the reply text for a message; plain chatter gets no reply
func (s *LineWebhookService) handleCommand(ctx context.Context, text string) (string, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return "", nil
	}

	command := strings.ToLower(parts[0])
	switch command {
	case "/lunch", "lunch":
		summary, err := s.lunch.GetLunchSummary(ctx)
		if err != nil {
			// Configuration errors are logged, not sent to the chat.
			logrus.Errorf("Lunch summary unavailable: %v", err)
			return "Lunch lookup is not configured", nil
		}
		return summary, nil

	case "/help":
		return helpText, nil

	default:
		if strings.HasPrefix(command, "/") {
			return fmt.Sprintf("Unknown command: %s\nType /help for available commands", command), nil
		}
		return "", nil
	}
}

// handleFollowEvent - greets new followers
func (s *LineWebhookService) handleFollowEvent(event domain.LineWebhookEvent) error {
	logrus.Infof("User followed: userID=%s", event.Source.UserID)
	if event.Source.UserID == "" {
		return nil
	}

	welcomeMsg := domain.LinePushMessageRequest{
		To: event.Source.UserID,
		Messages: []domain.LineOutgoingMessage{
			{
				Type: domain.LineMessageTypeText,
				Text: "Thanks for adding me!\n\n" + helpText,
			},
		},
	}
	if _, err := s.lineClient.PushMessage(welcomeMsg); err != nil {
		return fmt.Errorf("failed to send welcome message: %w", err)
	}

	return nil
}
