// ABOUTME: Cost analytics endpoints served by the analytics origin
// ABOUTME: Summary, history, breakdown, billing, and free-tier reads

package api

import (
	"context"
	"fmt"
)

// CostSummary is the month-to-date headline numbers for the dashboard.
type CostSummary struct {
	TotalMTD      float64 `json:"total_mtd"`
	Forecasted    float64 `json:"forecasted"`
	ChangePercent float64 `json:"change_percent"`
}

// MonthlyInvoice is one row of the billing history table.
type MonthlyInvoice struct {
	Month  string  `json:"month"`
	Cost   float64 `json:"cost"`
	Status string  `json:"status"`
}

// CostPoint is a single day of spend in the cost history series.
type CostPoint struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

// ServiceCost is one slice of the per-service cost breakdown.
type ServiceCost struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FreeTierUsage reports consumption against one free-tier allowance.
type FreeTierUsage struct {
	Service     string  `json:"service"`
	UsageValue  float64 `json:"usageValue"`
	LimitValue  float64 `json:"limitValue"`
	Unit        string  `json:"unit"`
	Description string  `json:"description,omitempty"`
}

// CostSummary fetches the month-to-date summary via GET /costs/summary.
func (c *Client) CostSummary(ctx context.Context) (*CostSummary, error) {
	var summary CostSummary
	if err := c.Get(ctx, "/costs/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// MonthlyCosts fetches the billing history via GET /costs/monthly.
func (c *Client) MonthlyCosts(ctx context.Context) ([]MonthlyInvoice, error) {
	var invoices []MonthlyInvoice
	if err := c.Get(ctx, "/costs/monthly", &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// CostHistory fetches the daily spend series for the last N days via
// GET /costs/history.
func (c *Client) CostHistory(ctx context.Context, days int) ([]CostPoint, error) {
	var points []CostPoint
	path := fmt.Sprintf("/costs/history?days=%d", days)
	if err := c.Get(ctx, path, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// CostBreakdown fetches the current month's per-service breakdown via
// GET /costs/breakdown.
func (c *Client) CostBreakdown(ctx context.Context) ([]ServiceCost, error) {
	var breakdown []ServiceCost
	if err := c.Get(ctx, "/costs/breakdown", &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

// FreeTierStatus fetches free-tier consumption via GET /free-tier/status.
func (c *Client) FreeTierStatus(ctx context.Context) ([]FreeTierUsage, error) {
	var usage []FreeTierUsage
	if err := c.Get(ctx, "/free-tier/status", &usage); err != nil {
		return nil, err
	}
	return usage, nil
}
