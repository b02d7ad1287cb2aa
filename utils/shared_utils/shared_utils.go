package shared_utils

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/transport-senegal/api/logger"
)

// Cache durations
const (
	DISTANCE_CACHE_TTL = 1 * time.Hour
)

// Redis key prefixes
const (
	DISTANCE_CACHE_PREFIX = "distance:"
	RATE_LIMIT_PREFIX     = "ratelimit:"
)

const (
	charset     = "0123456789abcdefghijklmnopqrstuvwxyz"
	maxTinyID   = 64
	rejectAbove = 256 - 256%len(charset)
)

// GenerateTinyID returns a random lowercase alphanumeric id.
func GenerateTinyID(length int) (string, error) {
	if length <= 0 || length > maxTinyID {
		return "", fmt.Errorf("tiny id length %d out of range 1-%d", length, maxTinyID)
	}

	id := make([]byte, 0, length)
	buf := make([]byte, length*2)
	for len(id) < length {
		if _, err := rand.Read(buf); err != nil {
			logger.ErrorLogger.Errorf("Failed to read random bytes: %v", err)
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			// only bytes below the last full charset cycle
			if int(b) >= rejectAbove {
				continue
			}
			id = append(id, charset[int(b)%len(charset)])
			if len(id) == length {
				break
			}
		}
	}
	return string(id), nil
}
