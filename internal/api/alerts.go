// ABOUTME: Budget alert endpoints on the primary backend

package api

import (
	"context"
	"time"
)

// Alert is a budget alert raised by the platform.
type Alert struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Severity    string    `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
}

// Alerts lists active budget alerts via GET /alerts.
func (c *Client) Alerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := c.Get(ctx, "/alerts", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}
