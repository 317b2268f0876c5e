package auth

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/common"
)

const (
	refreshTokenSize = 32

	// DefaultRefreshTokenValidity is how long a freshly issued refresh token
	// stays usable.
	DefaultRefreshTokenValidity = 7 * 24 * time.Hour
)

// GenerateRefreshToken returns 32 random bytes, base64 encoded. The value
// carries no claims; it is only compared against the one stored on the account.
func GenerateRefreshToken() (string, error) {
	token, err := common.MakeRandBase64String(refreshTokenSize)
	if err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return token, nil
}

// RefreshTokenExpiry returns the expiry for a token issued at now.
func RefreshTokenExpiry(now time.Time, validity time.Duration) time.Time {
	if validity <= 0 {
		validity = DefaultRefreshTokenValidity
	}
	return now.Add(validity)
}
