// Package service contains the business logic layer: identity, catalog,
// application lifecycle, and reporting. Handlers parse HTTP and delegate
// here; repositories and the document store do the I/O.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shahriar/govjobs/internal/apperror"
	"github.com/shahriar/govjobs/internal/auth"
	"github.com/shahriar/govjobs/internal/metrics"
	"github.com/shahriar/govjobs/internal/model"
	"github.com/shahriar/govjobs/internal/repository"
)

// IdentityService owns account registration and credential verification.
type IdentityService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewIdentityService creates an IdentityService with all dependencies.
func NewIdentityService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *IdentityService {
	return &IdentityService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new applicant account and returns its principal, so
// registration establishes the session without a second lookup.
//
// The NID/email uniqueness check happens inside the store's insert — a
// duplicate comes back as ErrDuplicateIdentity no matter how the
// registrations interleave.
func (s *IdentityService) Register(ctx context.Context, nid, name, email, phone, rawPassword string) (auth.Principal, error) {
	return s.register(ctx, nid, name, email, phone, rawPassword, model.RoleApplicant)
}

// RegisterAdmin creates an account carrying the admin role. Admins go
// through the exact same store and hashing as applicants; the role flag is
// the only difference. Used by the startup bootstrap.
func (s *IdentityService) RegisterAdmin(ctx context.Context, nid, name, email, rawPassword string) (auth.Principal, error) {
	return s.register(ctx, nid, name, email, "", rawPassword, model.RoleAdmin)
}

func (s *IdentityService) register(ctx context.Context, nid, name, email, phone, rawPassword, role string) (auth.Principal, error) {
	nid = strings.TrimSpace(nid)
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	switch {
	case nid == "":
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return auth.Principal{}, apperror.ValidationFailed("nid", "nid is required")
	case name == "":
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return auth.Principal{}, apperror.ValidationFailed("name", "name is required")
	case email == "":
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return auth.Principal{}, apperror.ValidationFailed("email", "email is required")
	case rawPassword == "":
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return auth.Principal{}, apperror.ValidationFailed("password", "password is required")
	}

	hash, err := s.passwords.Hash(rawPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			return auth.Principal{}, apperror.ValidationFailed("password", "password is too long")
		}
		s.logger.Error("password hashing failed", slog.String("error", err.Error()))
		return auth.Principal{}, apperror.Storage("hashing password", err)
	}

	user := &model.User{
		NID:          nid,
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(phone),
		PasswordHash: hash,
		Role:         role,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateIdentity) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate_identity").Inc()
		} else {
			s.logger.Error("registration failed",
				slog.String("nid", nid),
				slog.String("error", err.Error()),
			)
		}
		return auth.Principal{}, fmt.Errorf("registering user: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.logger.Info("user registered",
		slog.Int64("userID", user.ID),
		slog.String("role", role),
	)

	return auth.Principal{
		UserID: user.ID,
		NID:    user.NID,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}

// Authenticate verifies credentials and returns the session principal.
//
// Unknown NID and wrong password both map to ErrInvalidCredentials so the
// caller cannot probe which NIDs hold accounts.
func (s *IdentityService) Authenticate(ctx context.Context, nid, rawPassword string) (auth.Principal, error) {
	user, err := s.users.GetUserByNID(ctx, strings.TrimSpace(nid))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return auth.Principal{}, apperror.InvalidCredentials()
		}
		s.logger.Error("login lookup failed", slog.String("error", err.Error()))
		return auth.Principal{}, fmt.Errorf("authenticating user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, rawPassword); err != nil {
		return auth.Principal{}, apperror.InvalidCredentials()
	}

	s.logger.Info("user authenticated", slog.Int64("userID", user.ID))

	return auth.Principal{
		UserID: user.ID,
		NID:    user.NID,
		Name:   user.Name,
		Role:   user.Role,
	}, nil
}
