// Package service contains the application's business logic layer.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"ideaboard/internal/middleware"
	"ideaboard/internal/models"
	"ideaboard/internal/repository"

	"github.com/google/uuid"
)

// IdentityService resolves session tokens to identities and handles
// invitation-code redemption.
type IdentityService struct {
	identityRepo repository.IdentityRepository
	inviteRepo   repository.InvitationRepository
}

// ResolveInput carries the request attributes needed to resolve a session.
type ResolveInput struct {
	SessionToken string
	IP           string
	UserAgent    string
}

// RedeemCodeInput carries the parameters for an invitation-code redemption.
type RedeemCodeInput struct {
	Identity *models.Identity
	Code     string
	Username string
}

// NewIdentityService returns a new IdentityService.
func NewIdentityService(identityRepo repository.IdentityRepository, inviteRepo repository.InvitationRepository) *IdentityService {
	return &IdentityService{
		identityRepo: identityRepo,
		inviteRepo:   inviteRepo,
	}
}

// NewSessionToken mints a fresh opaque session token.
func NewSessionToken() string {
	return uuid.NewString()
}

// Resolve maps a session token to an identity, creating a guest identity on
// first contact. Storage failures fail open: the caller gets a synthetic
// guest so read paths keep working.
func (s *IdentityService) Resolve(ctx context.Context, in ResolveInput) (*models.Identity, bool) {
	token := in.SessionToken
	created := false
	if token == "" {
		token = NewSessionToken()
		created = true
	}

	identity, err := s.identityRepo.GetByToken(ctx, token)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "Identity lookup failed, continuing as guest",
			slog.String("error", err.Error()))
		return models.GuestIdentity(token), created
	}

	if identity == nil {
		identity = &models.Identity{
			SessionToken: token,
			Username:     "Anonymous",
			Role:         models.RoleGuest,
			IPAddress:    in.IP,
			UserAgent:    in.UserAgent,
			LastActivity: time.Now(),
		}
		if err := s.identityRepo.Create(ctx, identity); err != nil {
			middleware.Logger.WarnContext(ctx, "Identity create failed, continuing as guest",
				slog.String("error", err.Error()))
			return models.GuestIdentity(token), created
		}
		return identity, true
	}

	if err := s.identityRepo.TouchActivity(ctx, identity.ID, in.IP, in.UserAgent); err != nil {
		middleware.Logger.WarnContext(ctx, "Failed to stamp identity activity",
			slog.Uint64("identity_id", uint64(identity.ID)),
			slog.String("error", err.Error()))
	}
	return identity, created
}

// NormalizeCode uppercases and trims an invitation code so matching is
// case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// RedeemCode redeems an invitation code for the calling identity and
// elevates its role. The consumed use and the role change are not atomic
// across tables; the code side wins, so a crash between the two leaves a
// consumed use rather than an unpaid elevation.
func (s *IdentityService) RedeemCode(ctx context.Context, in RedeemCodeInput) (*models.Identity, error) {
	if in.Identity == nil || in.Identity.ID == 0 {
		return nil, models.NewUnauthorizedError("A session is required to redeem a code")
	}

	code := NormalizeCode(in.Code)
	if code == "" {
		return nil, models.NewValidationError("Invitation code is required")
	}

	redeemed, err := s.inviteRepo.Redeem(ctx, code, in.Identity.SessionToken, time.Now())
	if err != nil {
		return nil, err
	}

	if !redeemed.Role.Grantable() {
		// A code granting a non-elevated role is a seeding bug; refuse it.
		return nil, models.NewConflictError("Invitation code grants an unknown role")
	}

	if err := s.identityRepo.SetRole(ctx, in.Identity.ID, redeemed.Role); err != nil {
		return nil, err
	}

	if username := strings.TrimSpace(in.Username); username != "" {
		if err := s.identityRepo.SetUsername(ctx, in.Identity.ID, username); err != nil {
			return nil, err
		}
	}

	middleware.CodeRedemptions.WithLabelValues(string(redeemed.Role)).Inc()
	middleware.Logger.InfoContext(ctx, "Invitation code redeemed",
		slog.Uint64("identity_id", uint64(in.Identity.ID)),
		slog.String("role", string(redeemed.Role)))

	return s.identityRepo.GetByID(ctx, in.Identity.ID)
}

// Logout resets the identity's role to guest. The reset is unconditional so
// elevated privileges never survive a replayed session token.
func (s *IdentityService) Logout(ctx context.Context, identity *models.Identity) error {
	if identity == nil || identity.ID == 0 {
		return nil
	}
	if err := s.identityRepo.SetRole(ctx, identity.ID, models.RoleGuest); err != nil {
		return err
	}
	middleware.Logger.InfoContext(ctx, "Session logged out",
		slog.Uint64("identity_id", uint64(identity.ID)),
		slog.String("previous_role", string(identity.Role)))
	return nil
}

// Current returns the freshest view of the identity backing a token.
func (s *IdentityService) Current(ctx context.Context, sessionToken string) (*models.Identity, error) {
	identity, err := s.identityRepo.GetByToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, models.NewUnauthorizedError("Unknown session")
	}
	return identity, nil
}

// ActiveSessions counts identities seen within the window.
func (s *IdentityService) ActiveSessions(ctx context.Context, window time.Duration) (int64, error) {
	return s.identityRepo.CountActiveSince(ctx, time.Now().Add(-window))
}
