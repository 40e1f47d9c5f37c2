package api

import "context"

// Login exchanges credentials for a bearer token and profile data.
// A 401 here never tears the session down; a failed login is the caller's
// problem, not a sign the current session expired.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, loginEndpoint, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetRegistrationSettings fetches the server-side registration switches
func (c *Client) GetRegistrationSettings(ctx context.Context) (*RegistrationSettings, error) {
	var resp RegistrationSettings
	if err := c.get(ctx, "/auth/registration-settings", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendVerificationCode asks the server to mail a verification code
func (c *Client) SendVerificationCode(ctx context.Context, email string) (*VerificationResponse, error) {
	var resp VerificationResponse
	payload := map[string]string{"email": email}
	if err := c.post(ctx, "/auth/send-verification-code", payload, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, details RegistrationDetails) (*MessageResponse, error) {
	var resp MessageResponse
	if err := c.post(ctx, "/auth/register", details, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
