package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrTokenSecretMissing = errors.New("token secret not configured")

// TokenData is what the API reads from a bearer token. Sub carries the
// numeric user id.
type TokenData struct {
	Sub    string
	UserID int64
	Email  string
	Exp    int64
}

// TokenVerifier validates HS256 bearer tokens issued by the platform's
// identity service.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func (v *TokenVerifier) ValidateToken(tokenString string) (*TokenData, error) {
	if len(v.secret) == 0 {
		return nil, ErrTokenSecretMissing
	}

	clean := sanitizeToken(tokenString)
	token, err := jwt.Parse(clean, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	sub := getValue(claims, "sub")
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || userID <= 0 {
		return nil, errors.New("subject is not a user id")
	}

	return &TokenData{
		Sub:    sub,
		UserID: userID,
		Email:  getValue(claims, "email"),
		Exp:    getInt64(claims, "exp"),
	}, nil
}

func (v *TokenVerifier) ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	return v.ValidateToken(token)
}

// IssueToken signs a token for the given user. Used by tests and local tooling.
func (v *TokenVerifier) IssueToken(userID int64, email string, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrTokenSecretMissing
	}

	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(userID, 10),
		"email": email,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}

func getValue(claims jwt.MapClaims, key string) string {
	if val, ok := claims[key].(string); ok {
		return val
	}
	return ""
}

func getInt64(claims jwt.MapClaims, key string) int64 {
	val, ok := claims[key]
	if !ok {
		return 0
	}
	if f, ok := val.(float64); ok {
		return int64(f)
	}
	if i, ok := val.(int64); ok {
		return i
	}
	return 0
}
