package domain

import "time"

// CredentialPair holds the OAuth tokens for the professional network.
// A nil ExpiresAt means freshness is unknown until the provider answers 401.
type CredentialPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// ExpiresWithin reports whether the access token expires before now+lead.
// Pairs without an expiry never report true.
func (c CredentialPair) ExpiresWithin(now time.Time, lead time.Duration) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.After(now.Add(lead))
}

// ExpiresIn returns the remaining lifetime at now, zero when unknown or elapsed.
func (c CredentialPair) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil || !c.ExpiresAt.After(now) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
