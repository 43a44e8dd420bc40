// Package auth issues and parses bearer tokens. A token is a signed JWT
// carrying the user id and a random jti; clients treat it as opaque and the
// server only honours it while a matching auth_tokens row exists.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/realty-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer signs with secret; ttl of zero issues tokens without expiry.
func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *Issuer) Issue(userID uint) (*models.AuthToken, error) {
	now := i.now()

	claims := jwt.RegisteredClaims{
		Subject:  strconv.FormatUint(uint64(userID), 10),
		ID:       uuid.NewString(),
		IssuedAt: jwt.NewNumericDate(now),
	}

	var expiresAt *time.Time
	if i.ttl > 0 {
		exp := now.Add(i.ttl)
		expiresAt = &exp
		claims.ExpiresAt = jwt.NewNumericDate(exp)
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &models.AuthToken{
		Key:       signed,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse checks signature and expiry and returns the user id in the token.
func (i *Issuer) Parse(key string) (uint, error) {
	var claims jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(key, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
