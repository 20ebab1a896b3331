// Package identity enriches the acting user with display attributes from the
// external user service. It is consulted only to build notification payloads
// and never gates a booking mutation: callers fall back to Fallback data when
// the service is slow, down or rejects the call.
package identity

import (
	"context"
	"errors"
	"fmt"
)

// UserInfo is the display data attached to notification payloads.
type UserInfo struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Resolver resolves display attributes for a user identifier.
type Resolver interface {
	Resolve(ctx context.Context, userID, token string) (UserInfo, error)
}

// ErrNoCredential reports that no bearer credential was available, so the
// external call was skipped entirely.
var ErrNoCredential = errors.New("identity: no bearer credential")

// Fallback synthesizes deterministic placeholder data for userID. Used
// whenever Resolve fails, trading enrichment accuracy for availability.
func Fallback(userID string) UserInfo {
	return UserInfo{
		UserID:      userID,
		Email:       fmt.Sprintf("user%s@test.local", userID),
		DisplayName: "Usuario",
	}
}
