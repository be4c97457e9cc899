package application

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gautamg795/forkable-menu/internal/domain"
)

func TestFormatSummary(t *testing.T) {
	tests := []struct {
		name    string
		summary *domain.DeliverySummary
		want    string
	}{
		{
			name: "single delivery",
			summary: &domain.DeliverySummary{Deliveries: []domain.Delivery{
				{RestaurantName: "Cafe A", Items: []string{"Sandwich", "Soup"}},
			}},
			want: "Cafe A: Sandwich, Soup",
		},
		{
			name: "multiple deliveries",
			summary: &domain.DeliverySummary{Deliveries: []domain.Delivery{
				{RestaurantName: "Cafe A", Items: []string{"Sandwich"}},
				{RestaurantName: "Taqueria", Items: []string{"Burrito", "Chips"}},
			}},
			want: "Cafe A: Sandwich. Taqueria: Burrito, Chips",
		},
		{
			name:    "no deliveries",
			summary: &domain.DeliverySummary{Date: "2024-03-05"},
			want:    "No lunch ordered",
		},
		{
			name:    "nil summary",
			summary: nil,
			want:    "No lunch ordered",
		},
		{
			name: "only empty deliveries",
			summary: &domain.DeliverySummary{Deliveries: []domain.Delivery{
				{RestaurantName: "Cafe A"},
				{RestaurantName: "Cafe B", Items: []string{""}},
			}},
			want: "No lunch ordered",
		},
		{
			name: "empty delivery omitted",
			summary: &domain.DeliverySummary{Deliveries: []domain.Delivery{
				{RestaurantName: "Cafe A"},
				{RestaurantName: "Cafe B", Items: []string{"Salad"}},
			}},
			want: "Cafe B: Salad",
		},
		{
			name: "missing restaurant name",
			summary: &domain.DeliverySummary{Deliveries: []domain.Delivery{
				{Items: []string{"Salad"}},
			}},
			want: "Unknown Restaurant: Salad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatSummary(tt.summary); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatOutcomeError(t *testing.T) {
	err := fmt.Errorf("%w", domain.ErrQueryMalformedResponse)
	if got := FormatOutcome(nil, err); got != "unknown error" {
		t.Errorf("expected error text unchanged, got %q", got)
	}

	custom := errors.New("login failed: login rejected: invalid email or password")
	summary := &domain.DeliverySummary{Deliveries: []domain.Delivery{{RestaurantName: "Cafe A", Items: []string{"Soup"}}}}
	if got := FormatOutcome(summary, custom); got != custom.Error() {
		t.Errorf("expected %q, got %q", custom.Error(), got)
	}
}

func TestFormatOutcomeSuccess(t *testing.T) {
	summary := &domain.DeliverySummary{Deliveries: []domain.Delivery{{RestaurantName: "Cafe A", Items: []string{"Sandwich", "Soup"}}}}
	if got := FormatOutcome(summary, nil); got != "Cafe A: Sandwich, Soup" {
		t.Errorf("unexpected output %q", got)
	}
}
