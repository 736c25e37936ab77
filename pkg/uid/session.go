package uid

import "github.com/google/uuid"

// GenerateSessionID returns a random (v4) UUID string for a game session.
func GenerateSessionID() string {
	return uuid.New().String()
}
