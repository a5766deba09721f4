package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

type SignedDetails struct {
	Email     string
	Name      string
	Uid       string
	User_role string
	jwt.StandardClaims
}

// TokenHelper issues and validates HS256 identity tokens.
type TokenHelper struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenHelper(secret string, ttl time.Duration) *TokenHelper {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenHelper{secret: []byte(strings.TrimSpace(secret)), ttl: ttl, now: time.Now}
}

func (h *TokenHelper) GenerateAllTokens(email string, name string, uid string, userRole string) (signedToken string, refreshSignedToken string, err error) {
	expiresAt := h.now().Add(h.ttl).Unix()
	claim := SignedDetails{
		Email:     email,
		Name:      name,
		Uid:       uid,
		User_role: userRole,
		StandardClaims: jwt.StandardClaims{
			Subject:   uid,
			ExpiresAt: expiresAt,
		},
	}
	refreshClaim := SignedDetails{
		Uid: uid,
		StandardClaims: jwt.StandardClaims{
			Subject:   uid,
			ExpiresAt: h.now().Add(7 * h.ttl).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString(h.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign token: %w", err)
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaim).SignedString(h.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}
	return token, refreshToken, nil
}

func (h *TokenHelper) ValidateToken(signedToken string) (*SignedDetails, error) {
	if strings.TrimSpace(signedToken) == "" {
		return nil, ErrMissingToken
	}
	if len(h.secret) == 0 {
		return nil, fmt.Errorf("%w: secret not configured", ErrInvalidToken)
	}
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SignedDetails{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return h.secret, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*SignedDetails)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Uid == "" {
		return nil, fmt.Errorf("%w: missing uid", ErrInvalidToken)
	}
	if claims.ExpiresAt < h.now().Unix() {
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}
	return claims, nil
}

// ExtractBearerToken strips the "Bearer " prefix from an Authorization header value.
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
