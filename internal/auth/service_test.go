// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/carterperez-dev/eventhub/internal/config"
	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/middleware"
	"github.com/carterperez-dev/eventhub/internal/policy"
)

type fakeTokenRepo struct {
	tokens map[string]*RefreshToken
}

var _ Repository = (*fakeTokenRepo)(nil)

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*RefreshToken)}
}

func (r *fakeTokenRepo) Create(_ context.Context, token *RefreshToken) error {
	token.CreatedAt = time.Now()
	stored := *token
	r.tokens[token.ID] = &stored
	return nil
}

func (r *fakeTokenRepo) FindByHash(
	_ context.Context,
	tokenHash string,
) (*RefreshToken, error) {
	for _, t := range r.tokens {
		if t.TokenHash == tokenHash {
			found := *t
			return &found, nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *fakeTokenRepo) FindByID(
	_ context.Context,
	id string,
) (*RefreshToken, error) {
	t, ok := r.tokens[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	found := *t
	return &found, nil
}

func (r *fakeTokenRepo) MarkAsUsed(
	_ context.Context,
	id, replacedByID string,
) error {
	t, ok := r.tokens[id]
	if !ok || t.IsUsed {
		return core.ErrNotFound
	}
	now := time.Now()
	t.IsUsed = true
	t.UsedAt = &now
	t.ReplacedByID = &replacedByID
	return nil
}

func (r *fakeTokenRepo) RevokeByID(_ context.Context, id string) error {
	t, ok := r.tokens[id]
	if !ok || t.RevokedAt != nil {
		return core.ErrNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (r *fakeTokenRepo) RevokeByFamilyID(
	_ context.Context,
	familyID string,
) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.FamilyID == familyID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) RevokeAllForUser(
	_ context.Context,
	userID string,
) error {
	now := time.Now()
	for _, t := range r.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			t.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeTokenRepo) GetActiveSessionsForUser(
	_ context.Context,
	userID string,
) ([]RefreshToken, error) {
	var out []RefreshToken
	for _, t := range r.tokens {
		if t.UserID == userID && t.IsValid() {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

type fakeUsers struct {
	byID      map[string]*UserInfo
	createErr error
}

var _ UserProvider = (*fakeUsers)(nil)

func (f *fakeUsers) GetByEmail(
	_ context.Context,
	email string,
) (*UserInfo, error) {
	for _, u := range f.byID {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	found := *u
	return &found, nil
}

func (f *fakeUsers) Create(
	_ context.Context,
	username, email, passwordHash string,
) (*UserInfo, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u := &UserInfo{
		ID:           "u-" + username,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         policy.RoleGuest,
		IsActive:     true,
	}
	f.byID[u.ID] = u
	created := *u
	return &created, nil
}

func (f *fakeUsers) IncrementTokenVersion(
	_ context.Context,
	userID string,
) error {
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.TokenVersion++
	return nil
}

func (f *fakeUsers) UpdatePassword(
	_ context.Context,
	userID, passwordHash string,
) error {
	u, ok := f.byID[userID]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type fakeBlacklist struct {
	jtis map[string]struct{}
}

var _ TokenBlacklist = (*fakeBlacklist)(nil)

func (b *fakeBlacklist) Add(
	_ context.Context,
	jti string,
	_ time.Duration,
) error {
	b.jtis[jti] = struct{}{}
	return nil
}

func (b *fakeBlacklist) Contains(
	_ context.Context,
	jti string,
) (bool, error) {
	_, ok := b.jtis[jti]
	return ok, nil
}

type fakeMailer struct {
	sent []string
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.sent = append(m.sent, to)
	return nil
}

type serviceFixture struct {
	svc       *Service
	repo      *fakeTokenRepo
	users     *fakeUsers
	blacklist *fakeBlacklist
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")
	if err := GenerateKeyPair(privPath, pubPath); err != nil {
		t.Fatalf("generate key pair: %v", err)
	}

	jwtMgr, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privPath,
		PublicKeyPath:      pubPath,
		AccessTokenExpire:  15 * time.Minute,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "eventhub",
		Audience:           "eventhub-api",
	})
	if err != nil {
		t.Fatalf("new jwt manager: %v", err)
	}

	resetCfg := config.ResetConfig{
		FrontendURL: "http://localhost:3000",
		TokenExpire: time.Hour,
		Secret:      "test-secret",
	}

	repo := newFakeTokenRepo()
	users := &fakeUsers{byID: make(map[string]*UserInfo)}
	blacklist := &fakeBlacklist{jtis: make(map[string]struct{})}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(
		repo,
		jwtMgr,
		NewResetTokenManager(resetCfg),
		users,
		&fakeMailer{},
		blacklist,
		resetCfg,
		logger,
	)

	return &serviceFixture{
		svc:       svc,
		repo:      repo,
		users:     users,
		blacklist: blacklist,
	}
}

func TestRegisterConflicts(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      error
	}{
		{"duplicate email", core.ErrEmailTaken, ErrEmailExists},
		{"duplicate username", core.ErrUsernameTaken, ErrUsernameExists},
		{"bare unique violation", core.ErrDuplicateKey, ErrEmailExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newServiceFixture(t)
			fx.users.createErr = tt.createErr

			_, err := fx.svc.Register(context.Background(), RegisterRequest{
				Username: "taken",
				Email:    "taken@example.com",
				Password: "correct-horse-battery",
			}, "test-agent", "127.0.0.1")
			if !errors.Is(err, tt.want) {
				t.Fatalf("Register() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	fx := newServiceFixture(t)

	resp, err := fx.svc.Register(context.Background(), RegisterRequest{
		Username: "newuser",
		Email:    "new@example.com",
		Password: "correct-horse-battery",
	}, "test-agent", "127.0.0.1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if resp.User.Role != policy.RoleGuest {
		t.Errorf("new account role = %q, want %q", resp.User.Role, policy.RoleGuest)
	}
	if resp.Tokens.AccessToken == "" || resp.Tokens.RefreshToken == "" {
		t.Error("expected both tokens in the register response")
	}

	claims, err := fx.svc.VerifyAccessToken(
		context.Background(),
		resp.Tokens.AccessToken,
	)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Errorf("claims user = %q, want %q", claims.UserID, resp.User.ID)
	}
}

func TestVerifyAccessTokenRejectsBlacklisted(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.users.byID["u1"] = &UserInfo{
		ID:       "u1",
		Role:     policy.RoleGuest,
		IsActive: true,
	}

	token, err := fx.svc.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: "u1",
		Role:   policy.RoleGuest,
	})
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	claims, err := fx.svc.VerifyAccessToken(ctx, token)
	if err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}
	if claims.JTI == "" {
		t.Fatal("expected a jti claim on the verified token")
	}

	if err := fx.svc.RevokeAccessToken(ctx, claims.JTI, claims.ExpiresAt); err != nil {
		t.Fatalf("RevokeAccessToken() error = %v", err)
	}

	if _, err := fx.svc.VerifyAccessToken(ctx, token); !errors.Is(err, core.ErrTokenRevoked) {
		t.Fatalf("VerifyAccessToken() after revoke error = %v, want %v",
			err, core.ErrTokenRevoked)
	}
}

func TestVerifyAccessTokenRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)
	fx.users.byID["u1"] = &UserInfo{
		ID:       "u1",
		Role:     policy.RolePremiumUser,
		IsActive: true,
	}

	token, err := fx.svc.jwt.CreateAccessToken(AccessTokenClaims{
		UserID: "u1",
		Role:   policy.RolePremiumUser,
	})
	if err != nil {
		t.Fatalf("create access token: %v", err)
	}

	if _, err := fx.svc.VerifyAccessToken(ctx, token); err != nil {
		t.Fatalf("VerifyAccessToken() error = %v", err)
	}

	// logout-all bumps the user's token_version, which must cut off every
	// access token minted before the bump.
	if err := fx.svc.LogoutAll(ctx, "u1"); err != nil {
		t.Fatalf("LogoutAll() error = %v", err)
	}

	if _, err := fx.svc.VerifyAccessToken(ctx, token); !errors.Is(err, core.ErrTokenRevoked) {
		t.Fatalf("VerifyAccessToken() after logout-all error = %v, want %v",
			err, core.ErrTokenRevoked)
	}
}

func TestLogoutRevokesBothTokens(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	raw := "raw-refresh-token"
	fx.repo.tokens["rt-1"] = &RefreshToken{
		ID:        "rt-1",
		UserID:    "u1",
		TokenHash: core.HashToken(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	claims := &middleware.AccessTokenClaims{
		UserID:    "u1",
		JTI:       "jti-1",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	if err := fx.svc.Logout(ctx, raw, claims); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if fx.repo.tokens["rt-1"].RevokedAt == nil {
		t.Error("refresh token was not revoked")
	}

	revoked, err := fx.blacklist.Contains(ctx, "jti-1")
	if err != nil {
		t.Fatalf("blacklist lookup: %v", err)
	}
	if !revoked {
		t.Error("access token jti was not blacklisted")
	}
}

func TestLogoutRejectsForeignRefreshToken(t *testing.T) {
	ctx := context.Background()
	fx := newServiceFixture(t)

	raw := "raw-refresh-token"
	fx.repo.tokens["rt-1"] = &RefreshToken{
		ID:        "rt-1",
		UserID:    "u1",
		TokenHash: core.HashToken(raw),
		ExpiresAt: time.Now().Add(time.Hour),
	}

	claims := &middleware.AccessTokenClaims{
		UserID:    "u2",
		JTI:       "jti-2",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	if err := fx.svc.Logout(ctx, raw, claims); !errors.Is(err, core.ErrForbidden) {
		t.Fatalf("Logout() error = %v, want %v", err, core.ErrForbidden)
	}

	if fx.repo.tokens["rt-1"].RevokedAt != nil {
		t.Error("another user's refresh token must stay valid")
	}
}
