package domain

import "time"

// AccessToken is a cached platform access token with an expiry hint.
// A zero ExpiresAt means the platform did not report a lifetime and the
// token is treated as non-expiring until replaced.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// refreshMargin refreshes tokens slightly before the platform-reported
// expiry so an in-flight call never carries a token that lapses mid-request.
const refreshMargin = 60 * time.Second

// Valid reports whether the token can still be used at the given instant.
func (t AccessToken) Valid(now time.Time) bool {
	if t.Token == "" {
		return false
	}
	if t.ExpiresAt.IsZero() {
		return true
	}
	return now.Before(t.ExpiresAt.Add(-refreshMargin))
}
