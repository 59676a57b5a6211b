// Package models defines the domain types exchanged with the health-program
// management API.
package models

// Identity is the authenticated user bundle returned by OTP verification and
// held by the session store. A usable identity always carries a non-empty
// token together with all identity attributes; partial bundles are invalid.
type Identity struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Complete reports whether the bundle satisfies the all-or-nothing session
// invariant.
func (i Identity) Complete() bool {
	return i.Token != "" && i.UserID != 0 && i.Username != "" && i.Email != ""
}
