// ABOUTME: Authentication endpoints on the primary backend
// ABOUTME: Login, two-phase signup, and token validation

package api

import "context"

// User is the profile record returned by the auth backend.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Credentials is the {user, token} pair returned by login and signup
// verification.
type Credentials struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendOTPRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Login exchanges credentials for a {user, token} pair via POST /auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	var creds Credentials
	if err := c.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password}, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// SendOTP requests a one-time signup code for the email via POST /auth/send-otp.
func (c *Client) SendOTP(ctx context.Context, email string) error {
	return c.Post(ctx, "/auth/send-otp", sendOTPRequest{Email: email}, nil)
}

// VerifySignup finalizes signup via POST /auth/verify, returning the new
// account's {user, token} pair.
func (c *Client) VerifySignup(ctx context.Context, email, otp, password, username string) (*Credentials, error) {
	var creds Credentials
	req := verifyRequest{Email: email, OTP: otp, Password: password, Username: username}
	if err := c.Post(ctx, "/auth/verify", req, &creds); err != nil {
		return nil, err
	}
	return &creds, nil
}

// Me validates the stored token via GET /auth/me and returns the profile it
// belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
