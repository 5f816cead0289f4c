// ABOUTME: Linked cloud account endpoints on the primary backend
// ABOUTME: CRUD plus on-demand cost resync

package api

import (
	"context"
	"fmt"
)

// Account is a linked cloud account whose spend is aggregated by the platform.
type Account struct {
	ID          string `json:"id"`
	AccountName string `json:"account_name"`
	AccountID   string `json:"account_id"`
	Region      string `json:"region,omitempty"`
	Status      string `json:"status,omitempty"`
}

// AccountInput carries the writable fields for create and update calls.
type AccountInput struct {
	AccountName string `json:"account_name"`
	AccountID   string `json:"account_id"`
	Region      string `json:"region,omitempty"`
}

// Accounts lists the linked cloud accounts via GET /accounts.
func (c *Client) Accounts(ctx context.Context) ([]Account, error) {
	var accounts []Account
	if err := c.Get(ctx, "/accounts", &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateAccount links a new cloud account via POST /accounts.
func (c *Client) CreateAccount(ctx context.Context, input AccountInput) (*Account, error) {
	var account Account
	if err := c.Post(ctx, "/accounts", input, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// UpdateAccount updates a linked account via PUT /accounts/{id}.
func (c *Client) UpdateAccount(ctx context.Context, id string, input AccountInput) (*Account, error) {
	var account Account
	if err := c.Put(ctx, "/accounts/"+id, input, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// DeleteAccount disconnects a linked account via DELETE /accounts/{id}.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.Delete(ctx, "/accounts/"+id)
}

// SyncAccount triggers a cost data resync via POST /accounts/{id}/sync.
func (c *Client) SyncAccount(ctx context.Context, id string) error {
	return c.Post(ctx, fmt.Sprintf("/accounts/%s/sync", id), nil, nil)
}
