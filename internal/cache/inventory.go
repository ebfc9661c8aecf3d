package cache

import "time"

// Every key the API writes lives under "photoshare:".
const (
	userKeyPrefix    = "photoshare:user:"
	sessionKeyPrefix = "photoshare:sess:"
)

// UserTTL bounds how stale a cached author name can be.
const UserTTL = 5 * time.Minute

func UserKey(userID string) string {
	return userKeyPrefix + userID
}

func SessionKey(id string) string {
	return sessionKeyPrefix + id
}
