package auth

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultAccessTokenValidity is deliberately short so clients renew often.
const DefaultAccessTokenValidity = 30 * time.Second

// Claims is the access token payload: identity, role names and the
// registered jti/iss/aud/iat/exp claims. The
// random jti keeps two tokens issued within the same second distinct.
type Claims struct {
	jwt.RegisteredClaims
	Email    string   `json:"email"`
	LastName string   `json:"last_name"`
	Roles    []string `json:"roles,omitempty"`
}

// TokenIssuerConfig carries the externally supplied signing settings.
type TokenIssuerConfig struct {
	SecretKey        string
	Issuer           string
	Audience         string
	ValidityDuration time.Duration
	// Now overrides the clock used for iat/exp; nil means time.Now.
	Now func() time.Time
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secretKey []byte
	issuer    string
	audience  string
	validity  time.Duration
	now       func() time.Time
}

// NewTokenIssuer validates cfg and returns an issuer. A missing secret,
// issuer or audience is a configuration error, never defaulted.
func NewTokenIssuer(cfg TokenIssuerConfig) (*TokenIssuer, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, fmt.Errorf("%w: signing secret is required", common.ErrorMisconfigured)
	}
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, fmt.Errorf("%w: token issuer and audience are required", common.ErrorMisconfigured)
	}
	validity := cfg.ValidityDuration
	if validity <= 0 {
		validity = DefaultAccessTokenValidity
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		validity:  validity,
		now:       now,
	}, nil
}

// Issue builds and signs an access token for account carrying one role
// claim entry per role.
func (i *TokenIssuer) Issue(account *models.Account, roles []models.Role) (string, error) {
	now := i.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.validity)),
		},
		Email:    account.Email,
		LastName: account.LastName,
		Roles:    models.RoleNames(roles),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Parse fully validates tokenString, expiry included.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

// ClaimsIgnoringExpiry verifies algorithm, signature, issuer and audience but
// accepts an expired token. It is only meant for the renewal flow, where the
// refresh token is the proof of freshness.
func (i *TokenIssuer) ClaimsIgnoringExpiry(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, i.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	// WithoutClaimsValidation also skips iss/aud, so check them here.
	if claims.Issuer != i.issuer || !slices.Contains(claims.Audience, i.audience) {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}

func (i *TokenIssuer) keyFunc(t *jwt.Token) (any, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, common.ErrInvalidToken
	}
	return i.secretKey, nil
}
