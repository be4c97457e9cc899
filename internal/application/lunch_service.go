package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/input"
	"github.com/gautamg795/forkable-menu/internal/ports/output"
	"github.com/gautamg795/forkable-menu/pkg/validator"

	validators "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var _ input.LunchService = (*LunchService)(nil)

// AccountConfig struct - the upstream account a LunchService acts for
type AccountConfig struct {
	Email      string `validate:"required"`
	Password   string `validate:"required"`
	AccountID  string
	Timezone   string
	CutoffHour int `validate:"min=0,max=23"`
}

func (a AccountConfig) accountID() string {
	if a.AccountID != "" {
		return a.AccountID
	}
	return a.Email
}

type stage int

const (
	stageLookup stage = iota
	stageTryCached
	stageLogin
	stageRetry
	stageDone
)

func (s stage) String() string {
	switch s {
	case stageLookup:
		return "lookup"
	case stageTryCached:
		return "try-cached"
	case stageLogin:
		return "login"
	case stageRetry:
		return "retry"
	case stageDone:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// LunchService struct - Application service implementing the lunch summary use case
type LunchService struct {
	client    output.ForkableClient
	cache     *SessionCache
	account   AccountConfig
	validator validator.Validator
	now       func() time.Time
}

// NewLunchService func - Creates new lunch service
func NewLunchService(client output.ForkableClient, cache *SessionCache, account AccountConfig) *LunchService {
	return &LunchService{
		client:    client,
		cache:     cache,
		account:   account,
		validator: validator.New(),
		now:       time.Now,
	}
}

// GetLunchSummary func - Use case: summarise the lunch delivered today, or tomorrow after the cutoff
func (s *LunchService) GetLunchSummary(ctx context.Context) (string, error) {
	if err := s.validateAccount(); err != nil {
		return "", err
	}

	targetDate, err := domain.TargetDate(s.now(), s.account.Timezone, s.account.CutoffHour)
	if err != nil {
		return "", err
	}

	summary, err := s.fetchDeliveries(ctx, targetDate)
	if err != nil {
		logrus.Errorf("Lunch lookup for %s failed: %v", targetDate, err)
	}
	return FormatOutcome(summary, err), nil
}

func (s *LunchService) validateAccount() error {
	err := s.validator.ValidateStruct(s.account)
	if err == nil {
		return nil
	}

	var fieldErrs validators.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fieldErr := range fieldErrs {
			if fieldErr.Field() == "Email" || fieldErr.Field() == "Password" {
				return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, domain.ErrMissingCredentials)
			}
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
}

// fetchDeliveries runs one request through the session stages. Every transition
// moves forward, so there is at most one login and two queries.
func (s *LunchService) fetchDeliveries(ctx context.Context, targetDate string) (*domain.DeliverySummary, error) {
	accountID := s.account.accountID()

	var (
		token   string
		summary *domain.DeliverySummary
		err     error
	)

	current := stageLookup
	for current != stageDone {
		logrus.Debugf("Lunch lookup stage: %s", current)

		switch current {
		case stageLookup:
			if record := s.cache.Get(ctx, accountID); record != nil {
				token = record.SessionToken
				current = stageTryCached
			} else {
				current = stageLogin
			}

		case stageTryCached:
			summary, err = s.client.QueryDeliveries(ctx, token, targetDate)
			if errors.Is(err, domain.ErrQueryUnauthenticated) {
				logrus.Warnf("Cached session for %s was rejected, logging in again", accountID)
				summary, err = nil, nil
				current = stageLogin
			} else {
				current = stageDone
			}

		case stageLogin:
			result, loginErr := s.client.Login(ctx, s.account.Email, s.account.Password)
			if loginErr == nil && (result == nil || result.SessionToken == "") {
				loginErr = domain.ErrLoginMalformedResponse
			}
			if loginErr != nil {
				err = fmt.Errorf("login failed: %w", loginErr)
				current = stageDone
				break
			}

			if putErr := s.cache.Put(ctx, accountID, result.SessionToken, result.ExpiresAt); putErr != nil {
				logrus.Errorf("Failed to store session for %s: %v", accountID, putErr)
			}
			token = result.SessionToken
			current = stageRetry

		case stageRetry:
			summary, err = s.client.QueryDeliveries(ctx, token, targetDate)
			current = stageDone
		}
	}

	return summary, err
}
