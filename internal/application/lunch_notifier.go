package application

import (
	"context"
	"fmt"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/input"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/sirupsen/logrus"
)

var _ input.LunchNotifier = (*LunchNotifierService)(nil)

// LunchNotifierService struct - pushes the lunch summary to a LINE user
type LunchNotifierService struct {
	lunch      input.LunchService
	lineClient output.LineClient
	userID     string
}

// NewLunchNotifierService func - Creates new lunch notifier
func NewLunchNotifierService(lunch input.LunchService, lineClient output.LineClient, userID string) *LunchNotifierService {
	return &LunchNotifierService{
		lunch:      lunch,
		lineClient: lineClient,
		userID:     userID,
	}
}

// NotifyLunch func - Use case: push today's (or tomorrow's) lunch to the configured user
func (s *LunchNotifierService) NotifyLunch(ctx context.Context) (string, error) {
	if s.lineClient == nil || s.userID == "" {
		return "", fmt.Errorf("%w: LINE notify user is not configured", domain.ErrInvalidConfig)
	}

	text, err := s.lunch.GetLunchSummary(ctx)
	if err != nil {
		return "", err
	}

	_, err = s.lineClient.PushMessage(domain.LinePushMessageRequest{
		To: s.userID,
		Messages: []domain.LineOutgoingMessage{
			{Type: domain.LineMessageTypeText, Text: text},
		},
	})
	if err != nil {
		logrus.Errorf("Failed to push lunch summary: %v", err)
		return "", err
	}
	return text, nil
}
