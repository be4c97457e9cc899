package forkable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gautamg795/forkable-menu/configs"
	"github.com/gautamg795/forkable-menu/internal/domain"
	"github.com/gautamg795/forkable-menu/internal/ports/output"

	"github.com/sirupsen/logrus"
)

const (
	defaultEndpoint         = "https://forkable.com/api/v2/graphql"
	defaultSessionCookie    = "_easyorder_session"
	defaultExpiryMargin     = 1 * time.Hour
	defaultFallbackLifetime = 23 * time.Hour

	maxResponseBytes = 4 << 20
)

const loginMutation = `mutation Login($email: String!, $password: String!) {
  login(input: {email: $email, password: $password}) {
    user { id }
    errors
  }
}`

const deliveriesQuery = `query Deliveries($date: ISO8601Date!) {
  deliveries(date: $date) {
    id
    deliveryDate
    restaurant { displayName }
    items { name }
  }
}`

var _ output.ForkableClient = (*ForkableClientAdapter)(nil)

// ForkableClientAdapter struct - Output adapter for the Forkable GraphQL API
type ForkableClientAdapter struct {
	httpClient       *http.Client
	endpoint         string
	extractor        SessionMaterialExtractor
	expiryMargin     time.Duration
	fallbackLifetime time.Duration
	now              func() time.Time
}

// NewForkableClientAdapter func - Creates new Forkable client adapter
func NewForkableClientAdapter(config configs.Forkable) *ForkableClientAdapter {
	endpoint := strings.TrimSuffix(config.Endpoint, "/")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	cookieName := config.SessionCookie
	if cookieName == "" {
		cookieName = defaultSessionCookie
	}

	expiryMargin := config.ExpiryMargin
	if expiryMargin < 0 {
		expiryMargin = defaultExpiryMargin
	}

	fallbackLifetime := config.FallbackLifetime
	if fallbackLifetime <= 0 {
		fallbackLifetime = defaultFallbackLifetime
	}

	httpClient := &http.Client{
		// zero means no client timeout
		Timeout: config.Timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	logrus.Infof("Forkable client adapter initialized with endpoint: %s, session cookie: %s", endpoint, cookieName)

	return &ForkableClientAdapter{
		httpClient:       httpClient,
		endpoint:         endpoint,
		extractor:        NewRegexpExtractor(cookieName),
		expiryMargin:     expiryMargin,
		fallbackLifetime: fallbackLifetime,
		now:              time.Now,
	}
}

// WithExtractor replaces the session cookie extractor
func (a *ForkableClientAdapter) WithExtractor(extractor SessionMaterialExtractor) *ForkableClientAdapter {
	a.extractor = extractor
	return a
}

// Login sends the account credentials and keeps the session cookie from the response
func (a *ForkableClientAdapter) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	resp, body, err := a.post(ctx, graphQLRequest{
		OperationName: "Login",
		Query:         loginMutation,
		Variables: map[string]interface{}{
			"email":    email,
			"password": password,
		},
	}, "")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, fmt.Errorf("%w: status %d", domain.ErrLoginRejected, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", domain.ErrLoginUnreachable, resp.StatusCode)
	}

	var apiResp loginAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		// A non-JSON body is tolerated; the cookie decides.
		logrus.Warnf("Forkable login response is not JSON: %v", err)
	} else if reason := apiResp.rejection(); reason != "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrLoginRejected, reason)
	}

	rawHeader := strings.Join(resp.Header.Values("Set-Cookie"), "\n")
	material, ok := a.extractor.Extract(rawHeader)
	if !ok {
		return nil, fmt.Errorf("%w: session cookie not found in Set-Cookie", domain.ErrLoginMalformedResponse)
	}

	result := &domain.LoginResult{
		SessionToken: material.Token,
		ExpiresAt:    a.expiresAt(material),
	}

	logrus.Infof("Forkable login successful, session valid until %s", result.ExpiresAt.Format(time.RFC3339))

	return result, nil
}

// expiresAt applies the safety margin to the cookie expiry, or the fallback lifetime when
// the cookie carries no usable date
func (a *ForkableClientAdapter) expiresAt(material SessionMaterial) time.Time {
	if material.ExpiryHint != "" {
		if t, ok := parseCookieDate(material.ExpiryHint); ok {
			return t.Add(-a.expiryMargin)
		}
		logrus.Warnf("Could not parse session cookie expiry %q, using fallback lifetime", material.ExpiryHint)
	}
	return a.now().Add(a.fallbackLifetime)
}

// QueryDeliveries fetches deliveries for targetDate using the session cookie
func (a *ForkableClientAdapter) QueryDeliveries(ctx context.Context, sessionToken, targetDate string) (*domain.DeliverySummary, error) {
	resp, body, err := a.post(ctx, graphQLRequest{
		OperationName: "Deliveries",
		Query:         deliveriesQuery,
		Variables: map[string]interface{}{
			"date": targetDate,
		},
	}, sessionToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQueryUnreachable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", domain.ErrQueryUnauthenticated, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", domain.ErrQueryUnreachable, resp.StatusCode)
	}

	var apiResp deliveriesAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("%w: failed to parse deliveries response: %v", domain.ErrQueryMalformedResponse, err)
	}

	if len(apiResp.Errors) > 0 {
		for _, gqlErr := range apiResp.Errors {
			if gqlErr.isAuthFailure() {
				return nil, fmt.Errorf("%w: %s", domain.ErrQueryUnauthenticated, gqlErr.Message)
			}
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrQueryMalformedResponse, apiResp.Errors[0].Message)
	}

	summary := &domain.DeliverySummary{
		Date:       targetDate,
		Deliveries: make([]domain.Delivery, 0, len(apiResp.Data.Deliveries)),
	}
	for _, d := range apiResp.Data.Deliveries {
		if datePortion(d.DeliveryDate) != targetDate {
			continue
		}
		items := make([]string, 0, len(d.Items))
		for _, item := range d.Items {
			if name := strings.TrimSpace(item.Name); name != "" {
				items = append(items, name)
			}
		}
		if len(items) == 0 {
			continue
		}
		restaurant := domain.UnknownRestaurant
		if d.Restaurant != nil && strings.TrimSpace(d.Restaurant.DisplayName) != "" {
			restaurant = strings.TrimSpace(d.Restaurant.DisplayName)
		}
		summary.Deliveries = append(summary.Deliveries, domain.Delivery{
			RestaurantName: restaurant,
			Items:          items,
		})
	}

	logrus.Infof("Forkable returned %d deliveries, %d on %s", len(apiResp.Data.Deliveries), len(summary.Deliveries), targetDate)

	return summary, nil
}

// post sends a GraphQL request and reads the whole response body
func (a *ForkableClientAdapter) post(ctx context.Context, request graphQLRequest, sessionToken string) (*http.Response, []byte, error) {
	bodyBytes, err := json.Marshal(request)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if sessionToken != "" {
		req.Header.Set("Cookie", sessionToken)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp, body, nil
}

// datePortion returns the YYYY-MM-DD prefix of a date or datetime string
func datePortion(value string) string {
	if len(value) < len(domain.OnlyDate) {
		return value
	}
	return value[:len(domain.OnlyDate)]
}

// API request/response structures for the Forkable GraphQL endpoint

type graphQLRequest struct {
	OperationName string                 `json:"operationName,omitempty"`
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

var authErrorCodes = map[string]bool{
	"UNAUTHENTICATED": true,
	"UNAUTHORIZED":    true,
	"FORBIDDEN":       true,
}

var authErrorPhrases = []string{
	"not authenticated",
	"unauthenticated",
	"unauthorized",
	"not authorized",
	"must be logged in",
	"sign in",
	"log in",
}

func (e graphQLError) isAuthFailure() bool {
	if authErrorCodes[strings.ToUpper(e.Extensions.Code)] {
		return true
	}
	msg := strings.ToLower(e.Message)
	for _, phrase := range authErrorPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

type loginAPIResponse struct {
	Data struct {
		Login *struct {
			User *struct {
				ID string `json:"id"`
			} `json:"user"`
			Errors json.RawMessage `json:"errors"`
		} `json:"login"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// rejection returns why Forkable refused the login, or "" when it did not
func (r loginAPIResponse) rejection() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	if r.Data.Login == nil {
		return ""
	}
	if errs := strings.TrimSpace(string(r.Data.Login.Errors)); errs != "" && errs != "null" && errs != "[]" {
		return errs
	}
	if r.Data.Login.User == nil {
		return "no user in login response"
	}
	return ""
}

type deliveriesAPIResponse struct {
	Data struct {
		Deliveries []struct {
			DeliveryDate string `json:"deliveryDate"`
			Restaurant   *struct {
				DisplayName string `json:"displayName"`
			} `json:"restaurant"`
			Items []struct {
				Name string `json:"name"`
			} `json:"items"`
		} `json:"deliveries"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}
