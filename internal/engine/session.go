package engine

import "time"

// SessionExpiresAt returns the moment a session started at startedAt stops
// accepting watches.
func (c Config) SessionExpiresAt(startedAt time.Time) time.Time {
	return startedAt.Add(c.SessionTimeout)
}

// SessionExpired reports whether a session started at startedAt is past its
// timeout at now. Expired sessions must not be reused: the watched-count a
// cooldown is computed from always belongs to a live session.
func (c Config) SessionExpired(startedAt, now time.Time) bool {
	return !now.Before(c.SessionExpiresAt(startedAt))
}
