// Package services contains server-side business logic. This file implements
// AuthService, which registers accounts, verifies credentials and issues and
// rotates token pairs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/userboarding/internal/common"
	"github.com/dmitrijs2005/userboarding/internal/dbx"
	"github.com/dmitrijs2005/userboarding/internal/logging"
	"github.com/dmitrijs2005/userboarding/internal/server/auth"
	"github.com/dmitrijs2005/userboarding/internal/server/config"
	"github.com/dmitrijs2005/userboarding/internal/server/models"
	"github.com/dmitrijs2005/userboarding/internal/server/repositories/repomanager"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/userboarding/internal/server/services"

// Outcome messages returned to callers. Authentication failures share one
// message per flow regardless of cause.
const (
	MsgRegistrationSuccess    = "Registration success"
	MsgEmailAlreadyRegistered = "Email already registered"
	MsgInvalidCredentials     = "Invalid Credentials"
	MsgInvalidToken           = "Invalid Token"
	MsgSuccess                = "Success"
)

// dummyPassword is hashed once at construction; logins for unknown emails
// verify against it so they cost the same as a wrong password.
const dummyPassword = "userboarding-timing-equalizer"

var errEmailTaken = errors.New("email taken")

type RegisterInput struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

type LoginInput struct {
	Email    string
	Password string
}

type RenewInput struct {
	AccessToken  string
	RefreshToken string
}

// TokenResponse carries the outcome message and, on success, both tokens.
type TokenResponse struct {
	Message      string
	AccessToken  string
	RefreshToken string
}

// AuthService orchestrates the credential primitives of the auth package
// against the account store. It holds no mutable state and is safe for
// concurrent use.
type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	hasher          *auth.PasswordHasher
	issuer          *auth.TokenIssuer
	refreshValidity time.Duration
	defaultRole     string
	dummyHash       string
	now             func() time.Time
	logger          logging.Logger
	tracer          trace.Tracer
}

// Option customizes an AuthService.
type Option func(*AuthService)

// WithClock replaces time.Now for token issuance, refresh expiry and the
// renewal freshness check.
func WithClock(now func() time.Time) Option {
	return func(s *AuthService) { s.now = now }
}

// WithTracerProvider replaces the global tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *AuthService) { s.tracer = tp.Tracer(tracerName) }
}

// NewAuthService wires the service from cfg. It fails with
// common.ErrorMisconfigured when the signing settings are missing.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, opts ...Option) (*AuthService, error) {
	if logger == nil {
		logger = logging.Nop{}
	}
	s := &AuthService{
		db:              db,
		repomanager:     m,
		hasher:          auth.NewPasswordHasher(cfg.PasswordHashIterations),
		refreshValidity: cfg.RefreshTokenValidityDuration,
		defaultRole:     cfg.DefaultRole,
		now:             time.Now,
		logger:          logger.With("module", "auth_service"),
		tracer:          otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}

	issuer, err := auth.NewTokenIssuer(auth.TokenIssuerConfig{
		SecretKey:        cfg.SecretKey,
		Issuer:           cfg.TokenIssuer,
		Audience:         cfg.TokenAudience,
		ValidityDuration: cfg.AccessTokenValidityDuration,
		Now:              s.now,
	})
	if err != nil {
		return nil, err
	}
	s.issuer = issuer

	if s.defaultRole == "" {
		return nil, fmt.Errorf("%w: default role is required", common.ErrorMisconfigured)
	}

	s.dummyHash, err = s.hasher.Hash(dummyPassword)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Register validates the input and creates the account with the default role
// in one transaction. Validation failures are returned as the message with a
// nil error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (msg string, err error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Register")
	defer func() { endSpan(span, msg, err) }()

	if msg := auth.ValidateRegistration(in.Email, in.Password, in.ConfirmPassword); msg != "" {
		return msg, nil
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	span.AddEvent("password hashed")

	var accountID string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.repomanager.Accounts(tx).Create(ctx, &models.Account{
			Email:        in.Email,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return errEmailTaken
			}
			return fmt.Errorf("create account: %w", err)
		}
		accountID = account.ID

		if _, err := s.repomanager.Roles(tx).Create(ctx, &models.Role{AccountID: account.ID, Name: s.defaultRole}); err != nil {
			return fmt.Errorf("create role: %w", err)
		}
		return nil
	})

	switch {
	case errors.Is(err, errEmailTaken):
		return MsgEmailAlreadyRegistered, nil
	case err != nil:
		s.logger.Error(ctx, "registration failed", "error", err)
		return "", err
	}

	s.logger.Info(ctx, "account registered", "account_id", accountID)
	return MsgRegistrationSuccess, nil
}

// Login checks the credentials and issues a fresh token pair, replacing any
// refresh token previously stored for the account.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (resp *TokenResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.Login")
	defer func() { endSpan(span, resp.message(), err) }()

	if in.Email == "" || in.Password == "" {
		return &TokenResponse{Message: MsgInvalidCredentials}, nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.repomanager.Accounts(tx).GetByEmail(ctx, in.Email)
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = s.hasher.Verify(in.Password, s.dummyHash)
			resp = &TokenResponse{Message: MsgInvalidCredentials}
			return nil
		}
		if err != nil {
			return fmt.Errorf("find account: %w", err)
		}

		ok, err := s.hasher.Verify(in.Password, account.PasswordHash)
		if err != nil {
			return fmt.Errorf("verify password for %s: %w", account.ID, err)
		}
		if !ok {
			resp = &TokenResponse{Message: MsgInvalidCredentials}
			return nil
		}

		resp, err = s.issueTokens(ctx, tx, account)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "login failed", "error", err)
		return nil, err
	}
	return resp, nil
}

// RenewAccessToken accepts an access token that may be expired but must
// otherwise verify, plus the account's current unexpired refresh token, and
// rotates both.
func (s *AuthService) RenewAccessToken(ctx context.Context, in RenewInput) (resp *TokenResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "AuthService.RenewAccessToken")
	defer func() { endSpan(span, resp.message(), err) }()

	if in.RefreshToken == "" {
		return &TokenResponse{Message: MsgInvalidToken}, nil
	}

	claims, err := s.issuer.ClaimsIgnoringExpiry(in.AccessToken)
	if err != nil || claims.Email == "" {
		return &TokenResponse{Message: MsgInvalidToken}, nil
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		account, err := s.repomanager.Accounts(tx).GetByEmailAndRefreshToken(ctx, claims.Email, in.RefreshToken, s.now())
		if errors.Is(err, common.ErrorNotFound) {
			resp = &TokenResponse{Message: MsgInvalidToken}
			return nil
		}
		if err != nil {
			return fmt.Errorf("find account by refresh token: %w", err)
		}

		resp, err = s.issueTokens(ctx, tx, account)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "token renewal failed", "error", err)
		return nil, err
	}
	return resp, nil
}

func (s *AuthService) issueTokens(ctx context.Context, tx dbx.DBTX, account *models.Account) (*TokenResponse, error) {
	roles, err := s.repomanager.Roles(tx).ListByAccount(ctx, account.ID)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	access, err := s.issuer.Issue(account, roles)
	if err != nil {
		return nil, err
	}

	refresh, err := auth.GenerateRefreshToken()
	if err != nil {
		return nil, err
	}

	expiresAt := auth.RefreshTokenExpiry(s.now(), s.refreshValidity)
	if err := s.repomanager.Accounts(tx).UpdateRefreshToken(ctx, account.ID, refresh, expiresAt); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	s.logger.Debug(ctx, "token pair issued", "account_id", account.ID, "roles", len(roles))
	return &TokenResponse{Message: MsgSuccess, AccessToken: access, RefreshToken: refresh}, nil
}

func (r *TokenResponse) message() string {
	if r == nil {
		return ""
	}
	return r.Message
}

// endSpan records the outcome message, never credentials or tokens.
func endSpan(span trace.Span, msg string, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, "internal error")
	} else {
		span.SetAttributes(attribute.String("auth.outcome", msg))
	}
	span.End()
}
