package domain

import "time"

// UnknownRestaurant is used when a delivery carries no restaurant name
const UnknownRestaurant = "Unknown Restaurant"

// Delivery is one restaurant's part of the lunch order
type Delivery struct {
	RestaurantName string
	Items          []string
}

// DeliverySummary is the result of a delivery query for a single date
type DeliverySummary struct {
	Date       string
	Deliveries []Delivery
}

// LoginResult holds the session material obtained from a successful login
type LoginResult struct {
	SessionToken string
	ExpiresAt    time.Time
}
