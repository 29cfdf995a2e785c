package models

import "time"

// CredentialStatus tracks a marketplace API credential's lifecycle state.
type CredentialStatus string

const (
	CredentialActive      CredentialStatus = "active"
	CredentialRateLimited CredentialStatus = "rate_limited"
	CredentialError       CredentialStatus = "error"
)

// Credential is one OAuth client_credentials keypair in the pool, persisted
// under the settings table key "ebay_keys".
type Credential struct {
	Label         string           `json:"label"`
	AppID         string           `json:"appId"`
	CertID        string           `json:"certId"`
	Status        CredentialStatus `json:"status"`
	RateLimitedAt *time.Time       `json:"rateLimitedAt,omitempty"`
	CallsToday    int              `json:"callsToday"`
	LastUsed      time.Time        `json:"lastUsed"`
}

// RotationStrategy selects how CredentialPool.AcquireToken picks among
// active credentials.
type RotationStrategy string

const (
	RotationRoundRobin RotationStrategy = "round_robin"
	RotationLeastUsed  RotationStrategy = "least_used"
)

// CredentialSettings is the full shape stored at settings.key = "ebay_keys".
type CredentialSettings struct {
	Keys             []Credential     `json:"keys"`
	RotationStrategy RotationStrategy `json:"rotation_strategy"`
}

// CachedToken is the in-memory minted bearer, cleared whenever its backing
// credential is marked rate-limited.
type CachedToken struct {
	Token           string
	ExpiresAt       time.Time
	CredentialLabel string
}

// ExpiringSoon reports whether the token is within 60s of expiry, the
// threshold AcquireToken uses to decide whether to mint a fresh one.
func (t *CachedToken) ExpiringSoon(now time.Time) bool {
	if t == nil {
		return true
	}
	return now.Add(60 * time.Second).After(t.ExpiresAt)
}
