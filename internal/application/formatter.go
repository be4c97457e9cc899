package application

import (
	"strings"

	"github.com/gautamg795/forkable-menu/internal/domain"
)

// NoLunchOrdered is rendered when no delivery with items matches the target date
const NoLunchOrdered = "No lunch ordered"

// FormatSummary renders deliveries as "<restaurant>: <item, item>" joined by ". "
func FormatSummary(summary *domain.DeliverySummary) string {
	if summary == nil {
		return NoLunchOrdered
	}

	entries := make([]string, 0, len(summary.Deliveries))
	for _, delivery := range summary.Deliveries {
		items := make([]string, 0, len(delivery.Items))
		for _, item := range delivery.Items {
			if item != "" {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}

		restaurant := delivery.RestaurantName
		if restaurant == "" {
			restaurant = domain.UnknownRestaurant
		}
		entries = append(entries, restaurant+": "+strings.Join(items, ", "))
	}

	if len(entries) == 0 {
		return NoLunchOrdered
	}
	return strings.Join(entries, ". ")
}

// FormatOutcome renders the final result of a lunch lookup; errors are shown verbatim
func FormatOutcome(summary *domain.DeliverySummary, err error) string {
	if err != nil {
		return err.Error()
	}
	return FormatSummary(summary)
}
