package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/meinhoongagan/servicehub/models"
)

// TokenClaims is the decoded identity carried by an auth token.
type TokenClaims struct {
	UserID    uint
	Role      string
	JTI       string
	ExpiresAt time.Time
}

// IssueToken signs an HS256 token for user that expires after ttl.
func IssueToken(secret []byte, user *models.User, ttl time.Duration) (string, TokenClaims, error) {
	if len(secret) == 0 {
		return "", TokenClaims{}, errors.New("empty signing secret")
	}

	now := time.Now()
	tc := TokenClaims{
		UserID:    user.ID,
		Role:      user.Role,
		JTI:       uuid.NewString(),
		ExpiresAt: now.Add(ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   tc.UserID,
		"role": tc.Role,
		"jti":  tc.JTI,
		"iat":  now.Unix(),
		"exp":  tc.ExpiresAt.Unix(),
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", TokenClaims{}, err
	}
	return signed, tc, nil
}

// ClaimsFromToken reads the identity out of a verified token.
func ClaimsFromToken(token *jwt.Token) (TokenClaims, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, errors.New("invalid token claims")
	}

	userID, err := claimUint(claims["id"])
	if err != nil {
		return TokenClaims{}, err
	}

	role, _ := claims["role"].(string)
	jti, _ := claims["jti"].(string)
	if jti == "" {
		return TokenClaims{}, errors.New("token has no jti")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return TokenClaims{}, errors.New("token has no expiry")
	}

	return TokenClaims{
		UserID:    userID,
		Role:      role,
		JTI:       jti,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

func claimUint(v interface{}) (uint, error) {
	switch id := v.(type) {
	case float64:
		return uint(id), nil
	case string:
		parsed, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse id claim: %w", err)
		}
		return uint(parsed), nil
	case nil:
		return 0, errors.New("no id found in claims")
	default:
		return 0, fmt.Errorf("unsupported id claim type: %T", id)
	}
}
