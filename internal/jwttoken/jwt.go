package jwttoken

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	dErrors "taxiassoc/pkg/errors"
)

// Claims are the claims this service expects on back-office access tokens.
// Tokens are issued by the association's identity provider; this service
// only validates them.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service validates JWT access tokens.
type Service struct {
	signingKey []byte
	issuer     string
}

func New(signingKey, issuer string) *Service {
	return &Service{signingKey: []byte(signingKey), issuer: issuer}
}

// Validate parses and verifies a token, returning the principal (username)
// it was issued to.
func (s *Service) Validate(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.Username == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token missing username claim")
	}
	return claims.Username, nil
}
