// Package auth mints and verifies bearer tokens and hashes passwords.
//
// Access and refresh tokens share one HMAC algorithm but are signed with
// distinct secrets, so a token of one kind never verifies as the other.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"itemhub/internal/domain"
)

// Default lifetimes.
const (
	DefaultAccessTTL  = 30 * time.Minute
	DefaultRefreshTTL = 10080 * time.Minute
)

// Kind selects the signing key and lifetime of a token.
type Kind int

const (
	Access Kind = iota
	Refresh
)

func (k Kind) String() string {
	if k == Refresh {
		return "refresh"
	}
	return "access"
}

// IssuerConfig configures an Issuer.
type IssuerConfig struct {
	Algorithm     string
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// Issuer is stateless apart from its keys: tokens are never stored.
type Issuer struct {
	method     jwt.SigningMethod
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewIssuer(cfg IssuerConfig) (*Issuer, error) {
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}

	issuer := &Issuer{
		method:     method,
		accessKey:  []byte(cfg.AccessSecret),
		refreshKey: []byte(cfg.RefreshSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}
	if issuer.accessTTL <= 0 {
		issuer.accessTTL = DefaultAccessTTL
	}
	if issuer.refreshTTL <= 0 {
		issuer.refreshTTL = DefaultRefreshTTL
	}
	if issuer.now == nil {
		issuer.now = time.Now
	}
	return issuer, nil
}

// AccessTTL reports the lifetime of access tokens.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

// RefreshTTL reports the lifetime of refresh tokens.
func (i *Issuer) RefreshTTL() time.Duration { return i.refreshTTL }

func (i *Issuer) IssueAccess(subject string) (string, error) {
	return i.issue(subject, Access)
}

func (i *Issuer) IssueRefresh(subject string) (string, error) {
	return i.issue(subject, Refresh)
}

func (i *Issuer) issue(subject string, kind Kind) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	key, ttl := i.keyFor(kind)
	now := i.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(i.method, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry against the key for kind
// and returns the subject claim.
func (i *Issuer) Verify(token string, kind Kind) (string, error) {
	key, _ := i.keyFor(kind)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{i.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	var claims jwt.RegisteredClaims
	parsed, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrInvalidToken)
	}
	return claims.Subject, nil
}

func (i *Issuer) keyFor(kind Kind) ([]byte, time.Duration) {
	if kind == Refresh {
		return i.refreshKey, i.refreshTTL
	}
	return i.accessKey, i.accessTTL
}
