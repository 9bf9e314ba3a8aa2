package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/user"
	"courier/internal/core/ports"
	"courier/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer is the fixed iss claim of every credential.
const Issuer = "courier"

var ErrSecretIsRequired = errors.New("signing secret is required")

// UserLookup is the part of the user repository login needs.
type UserLookup interface {
	Get(ctx context.Context, username string) (*user.User, error)
}

// Authenticator issues, verifies and revokes credentials.
type Authenticator struct {
	users    UserLookup
	sessions ports.SessionStore
	clock    ports.Clock
	secret   []byte
	idleTTL  time.Duration
	logger   *slog.Logger
}

func NewAuthenticator(
	users UserLookup,
	sessions ports.SessionStore,
	clock ports.Clock,
	secret string,
	idleTTL time.Duration,
	logger *slog.Logger,
) (*Authenticator, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if idleTTL <= 0 {
		return nil, errs.NewValueIsOutOfRangeError("session idle ttl", idleTTL, "1ns", "max duration")
	}

	return &Authenticator{
		users:    users,
		sessions: sessions,
		clock:    clock,
		secret:   []byte(secret),
		idleTTL:  idleTTL,
		logger:   logger.With("component", "authenticator"),
	}, nil
}

// Login checks the password and returns a signed credential. A live session
// for the user is reused, so credentials issued earlier stay valid.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.Get(ctx, username)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return "", errs.NewAuthError("invalid username or password")
	}
	if err != nil {
		return "", err
	}
	if !u.PasswordMatches(password) {
		return "", errs.NewAuthError("invalid username or password")
	}

	now := a.clock.Now()
	session, err := a.sessions.Get(ctx, username)
	switch {
	case err == nil && !a.isIdle(session, now):
		if err = a.sessions.Touch(ctx, username, now); err != nil {
			return "", err
		}
	case err == nil || errors.Is(err, errs.ErrObjectNotFound):
		session = ports.Session{
			ID:        kernel.NewUUID(),
			Username:  username,
			Role:      u.Role(),
			CreatedAt: now,
			LastSeen:  now,
		}
		if err = a.sessions.Save(ctx, session); err != nil {
			return "", err
		}
	default:
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:   Issuer,
		Subject:  username,
		ID:       session.ID.String(),
		IssuedAt: jwt.NewNumericDate(now),
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", errs.NewAuthErrorWithCause("sign credential", err)
	}

	a.logger.InfoContext(ctx, "user logged in", "username", username, "session_id", session.ID.String())
	return signed, nil
}

// Verify accepts a credential only if it is well formed, signed with our
// secret, carries our issuer and names a live session.
func (a *Authenticator) Verify(ctx context.Context, credential string) (Principal, error) {
	if credential == "" {
		return Principal{}, errs.NewAuthError("missing credential")
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(credential, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithTimeFunc(a.clock.Now),
	)
	if err != nil {
		return Principal{}, errs.NewAuthErrorWithCause("invalid credential", err)
	}
	if claims.Subject == "" {
		return Principal{}, errs.NewAuthError("credential names no user")
	}

	now := a.clock.Now()
	session, err := a.sessions.Get(ctx, claims.Subject)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return Principal{}, errs.NewAuthError("no live session for " + claims.Subject)
	}
	if err != nil {
		return Principal{}, err
	}
	if session.ID.String() != claims.ID {
		return Principal{}, errs.NewAuthError("credential was issued for an ended session")
	}
	if a.isIdle(session, now) {
		_ = a.sessions.Delete(ctx, claims.Subject)
		return Principal{}, errs.NewAuthError("session expired")
	}

	if err = a.sessions.Touch(ctx, claims.Subject, now); err != nil {
		return Principal{}, err
	}

	return Principal{Username: session.Username, Role: session.Role}, nil
}

// Logout drops the caller's session.
func (a *Authenticator) Logout(ctx context.Context, credential string) error {
	principal, err := a.Verify(ctx, credential)
	if err != nil {
		return err
	}

	if err = a.sessions.Delete(ctx, principal.Username); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "user logged out", "username", principal.Username)
	return nil
}

// SweepIdle drops every session idle for longer than the TTL.
func (a *Authenticator) SweepIdle(ctx context.Context) (int, error) {
	return a.sessions.DeleteIdle(ctx, a.clock.Now().Add(-a.idleTTL))
}

func (a *Authenticator) isIdle(s ports.Session, now time.Time) bool {
	return now.Sub(s.LastSeen) > a.idleTTL
}
