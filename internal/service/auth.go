package service

import (
	"crypto/subtle"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/fanpulse/backend/internal/models"
	"github.com/fanpulse/backend/internal/types"
)

// IdentityProvider resolves and authenticates dashboard identities. The
// role/category authorization model is the contract; where identities are
// stored is not.
type IdentityProvider interface {
	Lookup(email string) (*models.Identity, bool)
	Authenticate(email, password string) (*models.Identity, error)
}

// StaticIdentityProvider serves a fixed identity table. Stored passwords
// may be plain (compared in constant time) or bcrypt hashes.
type StaticIdentityProvider struct {
	identities map[string]models.Identity
}

// NewStaticIdentityProvider creates a provider over the given table.
func NewStaticIdentityProvider(identities []models.Identity) *StaticIdentityProvider {
	table := make(map[string]models.Identity, len(identities))
	for _, id := range identities {
		table[id.Email] = id
	}
	return &StaticIdentityProvider{identities: table}
}

// Lookup returns the identity for an email, if any.
func (p *StaticIdentityProvider) Lookup(email string) (*models.Identity, bool) {
	id, ok := p.identities[email]
	if !ok {
		return nil, false
	}
	return &id, true
}

// Authenticate checks credentials and returns the identity on success.
func (p *StaticIdentityProvider) Authenticate(email, password string) (*models.Identity, error) {
	id, ok := p.Lookup(email)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !credentialMatches(id.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return id, nil
}

func credentialMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

// LoadIdentities reads an identity table from a YAML file.
func LoadIdentities(path string) ([]models.Identity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read identity file: %w", err)
	}
	var identities []models.Identity
	if err := yaml.Unmarshal(data, &identities); err != nil {
		return nil, fmt.Errorf("parse identity file: %w", err)
	}
	return identities, nil
}

// DefaultIdentities is the built-in table used when no identity file is
// configured: one super user plus one user per category partition.
func DefaultIdentities() []models.Identity {
	return []models.Identity{
		{Email: "admin@fanpulse.io", Password: "admin2025", Role: models.RoleSuperUser, DisplayName: "Dashboard Admin"},
		{Email: "ticketing@fanpulse.io", Password: "tickets2025", Role: models.RoleCategoryUser, DisplayName: "Ticketing Team", Category: "Ticketing"},
		{Email: "stadium@fanpulse.io", Password: "stadium2025", Role: models.RoleCategoryUser, DisplayName: "Stadium Ops", Category: "Stadium Experience"},
		{Email: "fnb@fanpulse.io", Password: "fnb2025", Role: models.RoleCategoryUser, DisplayName: "F&B Team", Category: "Food & Beverage"},
		{Email: "merch@fanpulse.io", Password: "merch2025", Role: models.RoleCategoryUser, DisplayName: "Merchandise Team", Category: "Merchandise"},
		{Email: "travel@fanpulse.io", Password: "travel2025", Role: models.RoleCategoryUser, DisplayName: "Travel Team", Category: "Travel"},
	}
}

// AuthService issues and validates dashboard tokens.
type AuthService struct {
	provider  IdentityProvider
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(provider IdentityProvider, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 8 * time.Hour
	}
	return &AuthService{
		provider:  provider,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// Login authenticates and returns the identity plus a signed token.
func (s *AuthService) Login(email, password string) (*models.Identity, string, error) {
	identity, err := s.provider.Authenticate(email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.generateToken(identity)
	if err != nil {
		return nil, "", err
	}
	return identity, token, nil
}

func (s *AuthService) generateToken(identity *models.Identity) (string, error) {
	claims := jwt.MapClaims{
		"email":    identity.Email,
		"name":     identity.DisplayName,
		"role":     identity.Role,
		"category": identity.Category,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	out := &types.TokenClaims{}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		out.DisplayName = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	if v, ok := claims["category"].(string); ok {
		out.Category = v
	}
	if out.Email == "" || out.Role == "" {
		return nil, fmt.Errorf("token missing identity claims")
	}
	return out, nil
}
