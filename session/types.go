package session

import (
	"net/url"
	"time"
)

// Navigation targets signalled to the UI layer. The stores never navigate
// themselves; they ask the registered Navigator to.
const (
	LandingPath = "/"
	LoginPath   = "/login"
)

// Navigator receives redirect requests from the stores.
type Navigator interface {
	Redirect(path string)
}

// LoginRedirect builds the login path carrying a return location, so the
// caller can come back to where it was after authenticating.
func LoginRedirect(returnPath string) string {
	if returnPath == "" {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(returnPath)
}

// Profile is the authenticated user's account data
type Profile struct {
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	VIPStatus    string    `json:"vipStatus"`
	VIPExpiresAt time.Time `json:"vipExpiresAt"`
}

// IsVIP reports whether the membership is active
func (p Profile) IsVIP() bool {
	return p.VIPStatus == "active" && p.VIPExpiresAt.After(time.Now())
}

// Result is the outcome of an auth operation, with a user-displayable
// message on failure.
type Result struct {
	Success bool
	Message string
}

func failure(message string) Result {
	return Result{Success: false, Message: message}
}

func success(message string) Result {
	return Result{Success: true, Message: message}
}
