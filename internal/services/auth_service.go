package services

import (
	"context"

	"medwatch/internal/utils"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// CredentialVerifier decides whether a username/password pair is valid and
// which role it carries. Returns ErrInvalidCredentials on any mismatch, with
// no distinction between unknown user and wrong password.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (role string, err error)
}

type staticCredential struct {
	password string
	role     string
}

// StaticCredentialVerifier checks against a fixed in-process table. The demo
// deployment ships exactly two logins.
type StaticCredentialVerifier struct {
	entries map[string]staticCredential
}

func NewStaticCredentialVerifier() *StaticCredentialVerifier {
	return &StaticCredentialVerifier{
		entries: map[string]staticCredential{
			"doctor": {password: "med123", role: RoleAdmin},
			"user":   {password: "userpass", role: RoleUser},
		},
	}
}

// Verify compares plain strings. Not timing-safe and trivially enumerable;
// acceptable only because the table holds demo credentials.
func (v *StaticCredentialVerifier) Verify(_ context.Context, username, password string) (string, error) {
	entry, ok := v.entries[username]
	if !ok || entry.password != password {
		return "", ErrInvalidCredentials
	}
	return entry.role, nil
}

// CredentialRecord is a stored login for the store-backed verifier variant.
type CredentialRecord struct {
	Username     string
	PasswordHash string
	Role         string
}

// CredentialStore looks up a stored credential; (nil, nil) when the username
// is unknown.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*CredentialRecord, error)
}

// StoreCredentialVerifier resolves logins against a CredentialStore with
// Argon2id password hashes. Same contract as the static variant.
type StoreCredentialVerifier struct {
	store CredentialStore
}

func NewStoreCredentialVerifier(store CredentialStore) *StoreCredentialVerifier {
	return &StoreCredentialVerifier{store: store}
}

func (v *StoreCredentialVerifier) Verify(ctx context.Context, username, password string) (string, error) {
	record, err := v.store.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if record == nil {
		return "", ErrInvalidCredentials
	}
	if err := utils.VerifyPassword(record.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}
	return record.Role, nil
}

type AuthService struct {
	verifier CredentialVerifier
	tokens   utils.TokenConfig
}

func NewAuthService(verifier CredentialVerifier, tokens utils.TokenConfig) *AuthService {
	return &AuthService{
		verifier: verifier,
		tokens:   tokens,
	}
}

// Login verifies the pair and issues a signed token carrying the username as
// the name claim and the matched role as the role claim.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	role, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return "", err
	}
	return utils.GenerateToken(s.tokens, username, role)
}
