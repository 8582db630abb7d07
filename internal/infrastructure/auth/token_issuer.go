package auth

import (
	"errors"
	"fmt"
	"time"

	"montage_service/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
)

const (
	customerScope   = "customer"
	defaultTokenTTL = 30 * 24 * time.Hour
)

var ErrMissingSecret = errors.New("missing JWT_SECRET")

// CustomerClaims is the payload of a customer access token. It grants access
// to a single montage only.
type CustomerClaims struct {
	MontageID  string `json:"montage_id"`
	CustomerID string `json:"customer_id"`
	Scope      string `json:"scope"`
	jwt.RegisteredClaims
}

// TokenIssuer signs customer access tokens with HS256.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ interfaces.IAccessTokenIssuer = (*TokenIssuer)(nil)

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *TokenIssuer) Issue(montageID, customerID string) (string, error) {
	now := i.now().UTC()
	claims := CustomerClaims{
		MontageID:  montageID,
		CustomerID: customerID,
		Scope:      customerScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   customerID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse validates a customer access token and returns its claims.
func (i *TokenIssuer) Parse(token string) (CustomerClaims, error) {
	var claims CustomerClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		return CustomerClaims{}, err
	}
	if claims.Scope != customerScope {
		return CustomerClaims{}, fmt.Errorf("unexpected token scope %q", claims.Scope)
	}
	return claims, nil
}
