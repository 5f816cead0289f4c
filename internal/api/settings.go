// ABOUTME: Platform settings endpoints on the primary backend

package api

import "context"

// Settings is the platform configuration record.
type Settings struct {
	RetentionDays int    `json:"retentionDays"`
	Currency      string `json:"currency"`
}

// Settings fetches the platform configuration via GET /settings.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.Get(ctx, "/settings", &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings stores the platform configuration via PUT /settings and
// returns the record the backend accepted.
func (c *Client) SaveSettings(ctx context.Context, settings Settings) (*Settings, error) {
	var saved Settings
	if err := c.Put(ctx, "/settings", settings, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
