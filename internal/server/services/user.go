package services

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/toolly/toolly/internal/common"
	"github.com/toolly/toolly/internal/server/auth"
	"github.com/toolly/toolly/internal/server/config"
	"github.com/toolly/toolly/internal/server/models"
	"github.com/toolly/toolly/internal/server/repositories/repomanager"
)

const (
	minUsernameLength = 5
	minPasswordLength = 8
	passwordSpecials  = `!@#$%^&*(),.?":{}|<>`
)

var (
	uppercaseRe = regexp.MustCompile(`[A-Z]`)
	digitRe     = regexp.MustCompile(`[0-9]`)
	emailRe     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// LoginResult is what a successful credential check produces. Exactly one of
// Token and PendingToken is set: accounts with two-factor enabled receive a
// short-lived pending token and must complete the code exchange before an
// access token is issued.
type LoginResult struct {
	Token        string
	Requires2FA  bool
	PendingToken string
}

// TOTPSetup carries a freshly generated shared secret for the enrollment
// round-trip. Nothing is persisted until the user proves possession of the
// secret via Enable2FA.
type TOTPSetup struct {
	Secret          string
	ProvisioningURL string
}

// UserService implements signup, login, two-factor enrollment and
// verification, and the TOTP-gated password reset.
type UserService struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	cfg *config.Config
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{db: db, rm: rm, cfg: cfg}
}

func (s *UserService) secret() []byte {
	return []byte(s.cfg.SecretKey)
}

func validatePassword(ve *ValidationError, password string) {
	if len(password) < minPasswordLength {
		ve.add("password", "must be at least 8 characters long")
		return
	}
	if !uppercaseRe.MatchString(password) {
		ve.add("password", "must contain an uppercase letter")
	}
	if !digitRe.MatchString(password) {
		ve.add("password", "must contain a digit")
	}
	if !strings.ContainsAny(password, passwordSpecials) {
		ve.add("password", "must contain a special character")
	}
}

func validateSignup(username, password, email string) error {
	ve := &ValidationError{}
	if len(username) < minUsernameLength {
		ve.add("username", "must be at least 5 characters long")
	}
	validatePassword(ve, password)
	if email != "" && !emailRe.MatchString(email) {
		ve.add("email", "is not a valid email address")
	}
	return ve.orNil()
}

// Signup registers a new account. When totpSecret is non-empty the caller has
// completed a pre-signup enrollment and the account starts with two-factor
// enabled; the secret must verify against the supplied code first.
func (s *UserService) Signup(ctx context.Context, username, password, email, totpSecret, totpCode string) (*models.User, error) {
	if err := validateSignup(username, password, email); err != nil {
		return nil, err
	}

	if totpSecret != "" {
		if !auth.VerifyTOTPCode(totpSecret, totpCode, time.Now()) {
			return nil, common.ErrInvalidTOTPCode
		}
	}

	repo := s.rm.Users(s.db)

	exists, err := repo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Email:        email,
		TOTPSecret:   totpSecret,
		TOTPEnabled:  totpSecret != "",
	}

	// The unique constraint stays authoritative; the pre-check only makes
	// the common case cheap.
	return repo.Create(ctx, user)
}

// Login verifies credentials. Failures are indistinguishable to the caller:
// unknown usernames burn an argon2 verification against a throwaway digest so
// the response time does not reveal whether the account exists.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.rm.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.VerifyDummy(password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}

	if user.TOTPEnabled && user.TOTPSecret != "" {
		pending, err := auth.GenerateToken(user.ID, auth.Purpose2FAPending,
			s.secret(), s.cfg.PendingTokenValidityDuration)
		if err != nil {
			return nil, err
		}
		return &LoginResult{Requires2FA: true, PendingToken: pending}, nil
	}

	token, err := auth.GenerateToken(user.ID, auth.PurposeAccess,
		s.secret(), s.cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token}, nil
}

// Validate2FA exchanges a pending token plus a valid TOTP code for an access
// token, completing a two-factor login.
func (s *UserService) Validate2FA(ctx context.Context, pendingToken, code string) (string, error) {
	userID, err := auth.GetUserIDFromToken(pendingToken, auth.Purpose2FAPending, s.secret())
	if err != nil {
		return "", err
	}

	user, err := s.rm.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return "", common.ErrTOTPNotEnabled
	}

	if !auth.VerifyTOTPCode(user.TOTPSecret, code, time.Now()) {
		return "", common.ErrInvalidTOTPCode
	}

	return auth.GenerateToken(user.ID, auth.PurposeAccess,
		s.secret(), s.cfg.AccessTokenValidityDuration)
}

// Setup2FA generates a fresh shared secret for an authenticated user. The
// secret is only persisted once Enable2FA confirms the user's authenticator
// produces matching codes.
func (s *UserService) Setup2FA(ctx context.Context, userID int64) (*TOTPSetup, error) {
	user, err := s.rm.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	secret, url, err := auth.GenerateTOTPSecret(user.Username)
	if err != nil {
		return nil, err
	}
	return &TOTPSetup{Secret: secret, ProvisioningURL: url}, nil
}

// Enable2FA verifies a code against the secret issued by Setup2FA and, on
// success, persists it and marks the account as two-factor protected.
func (s *UserService) Enable2FA(ctx context.Context, userID int64, secret, code string) error {
	if secret == "" {
		ve := &ValidationError{}
		ve.add("secret", "is required")
		return ve
	}
	if !auth.VerifyTOTPCode(secret, code, time.Now()) {
		return common.ErrInvalidTOTPCode
	}
	return s.rm.Users(s.db).EnableTOTP(ctx, userID, secret)
}

// ResetPassword replaces the password of a two-factor-protected account. The
// TOTP code is the proof of identity; accounts without two-factor enabled
// cannot reset this way.
func (s *UserService) ResetPassword(ctx context.Context, username, code, newPassword string) error {
	ve := &ValidationError{}
	validatePassword(ve, newPassword)
	if err := ve.orNil(); err != nil {
		return err
	}

	user, err := s.rm.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !user.TOTPEnabled || user.TOTPSecret == "" {
		return common.ErrTOTPNotEnabled
	}
	if !auth.VerifyTOTPCode(user.TOTPSecret, code, time.Now()) {
		return common.ErrInvalidTOTPCode
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.rm.Users(s.db).UpdatePasswordHash(ctx, username, hash)
}

// UsernameExists backs the availability check on the signup form.
func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.rm.Users(s.db).UsernameExists(ctx, username)
}
