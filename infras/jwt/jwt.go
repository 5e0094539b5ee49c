// Package jwt signs and verifies the bearer tokens staff use against the
// management routes. Guests never receive one; they are identified by the
// holder header instead.
package jwt

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"innkeep/config"
	"innkeep/shared/constant"
	"innkeep/shared/timezone"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token has expired")
	ErrInvalidClaim  = errors.New("invalid token claim")
	ErrUnknownRole   = errors.New("role must be one of admin, manager, accountant, receptionist")
	ErrMissingBearer = errors.New("authorization header must carry a bearer token")
)

var StaffRoles = []string{
	constant.RoleAdmin,
	constant.RoleManager,
	constant.RoleAccountant,
	constant.RoleReceptionist,
}

type Kind string

const (
	AccessToken  Kind = "access"
	RefreshToken Kind = "refresh"
)

const bearerPrefix = "Bearer "

type Staff struct {
	ID    string
	Email string
	Role  string
}

type Claims struct {
	StaffID string `json:"staff_id"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role"`
	Kind    Kind   `json:"kind"`
	jwt.RegisteredClaims
}

func (c *Claims) Staff() Staff {
	return Staff{ID: c.StaffID, Email: c.Email, Role: c.Role}
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	Issue(staff Staff) (*TokenPair, error)
	Verify(token string, kind Kind) (*Claims, error)
	Refresh(refreshToken string) (*TokenPair, error)
}

type signer struct {
	issuer  string
	secrets map[Kind][]byte
	ttl     map[Kind]time.Duration
}

func New(cfg *config.Config) JWT {
	return &signer{
		issuer: cfg.App.Name,
		secrets: map[Kind][]byte{
			AccessToken:  []byte(cfg.JWT.AccessSecret),
			RefreshToken: []byte(cfg.JWT.RefreshSecret),
		},
		ttl: map[Kind]time.Duration{
			AccessToken:  time.Duration(cfg.JWT.AccessExpireMin) * time.Minute,
			RefreshToken: time.Duration(cfg.JWT.RefreshExpireMin) * time.Minute,
		},
	}
}

func (s *signer) Issue(staff Staff) (*TokenPair, error) {
	if staff.ID == "" {
		return nil, fmt.Errorf("%w: staff id is empty", ErrInvalidClaim)
	}

	if !slices.Contains(StaffRoles, staff.Role) {
		return nil, ErrUnknownRole
	}

	now := timezone.Now()

	access, err := s.sign(staff, AccessToken, now)
	if err != nil {
		return nil, err
	}

	refresh, err := s.sign(staff, RefreshToken, now)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    strings.TrimSpace(bearerPrefix),
		ExpiresIn:    int64(s.ttl[AccessToken].Seconds()),
	}, nil
}

func (s *signer) sign(staff Staff, kind Kind, issuedAt time.Time) (string, error) {
	tokenID := uuid.NewString()

	claims := Claims{
		StaffID: staff.ID,
		Email:   staff.Email,
		Role:    staff.Role,
		Kind:    kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl[kind])),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.issuer,
			Subject:   staff.ID,
			ID:        tokenID,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secrets[kind])
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", kind, err)
	}

	return signed, nil
}

// Verify parses token with the secret for kind. A token signed for the other
// kind fails the signature check, and the kind claim is checked as well.
func (s *signer) Verify(token string, kind Kind) (*Claims, error) {
	secret, ok := s.secrets[kind]
	if !ok {
		return nil, fmt.Errorf("unknown token kind: %s", kind)
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Kind != kind || claims.StaffID == "" || claims.Role == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

func (s *signer) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := s.Verify(refreshToken, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	return s.Issue(claims.Staff())
}

func BearerToken(header string) (string, error) {
	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", ErrMissingBearer
	}

	return strings.TrimSpace(token), nil
}
