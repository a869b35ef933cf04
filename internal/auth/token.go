package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// CookieName is the fixed key the session token is stored under.
const CookieName = "procurement_user"

// ErrInvalidToken covers malformed, tampered, expired and unknown-role tokens.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the signed session record.
type Claims struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	VendorID   string `json:"vendor_id,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with HS256.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewCodec builds a codec. ttl bounds each token's lifetime.
func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Encode issues a token for the user.
func (c *Codec) Encode(user models.User) (string, *Claims, error) {
	now := c.now()
	claims := &Claims{
		Name:       user.Name,
		Email:      user.Email,
		Role:       string(user.Role),
		Department: user.Department,
		VendorID:   user.VendorID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims, nil
}

// Decode verifies the token and restores the identity it carries.
func (c *Codec) Decode(raw string) (models.User, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return models.User{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return models.User{}, nil, ErrInvalidToken
	}

	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return models.User{}, nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return models.User{}, nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return models.User{
		ID:         claims.Subject,
		Name:       claims.Name,
		Email:      claims.Email,
		Role:       role,
		Department: claims.Department,
		VendorID:   claims.VendorID,
	}, claims, nil
}
