// Package auth issues and verifies the HS256 token pair returned by
// login: a short-lived access token and a longer-lived refresh token,
// told apart by a token-type claim.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongTokenUse = errors.New("token not valid for this use")
)

type Claims struct {
	UserID    string `json:"userId"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func generateToken(userID, tokenType string, secret []byte, ttl time.Duration) (string, error) {
	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// GenerateTokenPair issues fresh access and refresh tokens for userID.
func GenerateTokenPair(userID string, secret []byte, accessTTL, refreshTTL time.Duration) (TokenPair, error) {
	access, err := generateToken(userID, TokenTypeAccess, secret, accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := generateToken(userID, TokenTypeRefresh, secret, refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// GenerateAccessToken issues a lone access token, used by the refresh
// exchange which must not rotate the refresh token.
func GenerateAccessToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	return generateToken(userID, TokenTypeAccess, secret, ttl)
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccessToken verifies an access token and returns the user id.
func ParseAccessToken(tokenString string, secret []byte) (string, error) {
	claims, err := parseToken(tokenString, secret)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeAccess {
		return "", ErrWrongTokenUse
	}
	return claims.UserID, nil
}

// ParseRefreshToken verifies a refresh token and returns the user id.
// Access tokens are rejected here so a leaked short-lived token cannot
// be used to mint new ones.
func ParseRefreshToken(tokenString string, secret []byte) (string, error) {
	claims, err := parseToken(tokenString, secret)
	if err != nil {
		return "", err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", ErrWrongTokenUse
	}
	return claims.UserID, nil
}
