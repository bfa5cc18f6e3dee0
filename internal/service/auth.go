package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/skillfolio/portfolio-api/internal/hash"
	"github.com/skillfolio/portfolio-api/internal/logging"
	"github.com/skillfolio/portfolio-api/internal/models"
	"github.com/skillfolio/portfolio-api/internal/repo"
	"github.com/skillfolio/portfolio-api/internal/service/token"
)

const maxUsernameLen = 150

var (
	validate   = validator.New()
	fullnameRe = regexp.MustCompile(`^[a-zA-Z\s-]+$`)
)

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *token.Service
}

type TokenResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func validateRegistration(email, fullname, password string) ValidationErrors {
	ve := ValidationErrors{}

	if err := validate.Var(email, "required,email"); err != nil {
		ve.Add("email", "Enter a valid email address.")
	}

	if strings.TrimSpace(fullname) == "" {
		ve.Add("fullname", "This field is required.")
	} else if !fullnameRe.MatchString(fullname) {
		ve.Add("fullname", "Full name can only contain letters, spaces, or hyphens.")
	}

	if len(password) < 8 {
		ve.Add("password", "Password must be at least 8 characters long.")
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		ve.Add("password", "Password must contain at least one uppercase letter.")
	}
	if !hasDigit {
		ve.Add("password", "Password must contain at least one number.")
	}

	return ve
}

// deriveUsername builds the public handle from the full name.
func deriveUsername(fullname string) string {
	username := strings.ReplaceAll(strings.ToLower(fullname), " ", "_")
	if len(username) > maxUsernameLen {
		username = username[:maxUsernameLen]
	}
	return username
}

// Register creates the user and issues their first token. Both happen inside
// one transaction so a signing fault never leaves a half-created account.
func (s *AuthService) Register(ctx context.Context, email, fullname, password string) (*TokenResult, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if ve := validateRegistration(email, fullname, password); len(ve) > 0 {
		return nil, nil, ve
	}

	email = strings.ToLower(email)
	if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
		ve := ValidationErrors{}
		ve.Add("email", "This email is already in use.")
		return nil, nil, ve
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, nil, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash password", "error", err)
		return nil, nil, err
	}

	user := models.User{
		Email:        email,
		FullName:     fullname,
		Username:     deriveUsername(fullname),
		PasswordHash: pwHash,
	}

	var res TokenResult
	err = s.Repo.Transaction(ctx, func(tx *repo.GormRepo) error {
		if err := tx.CreateUser(ctx, &user); err != nil {
			return err
		}
		signed, exp, err := s.Tokens.Issue(&user)
		if err != nil {
			l.Error("register_failed", "reason", "token issue", "error", err)
			return ErrTokenIssue
		}
		res = TokenResult{Token: signed, ExpiresAt: exp}
		return nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// lost a race on the unique email index
			ve := ValidationErrors{}
			ve.Add("email", "This email is already in use.")
			return nil, nil, ve
		}
		return nil, nil, err
	}

	l.Info("user_registered", "user_id", user.ID, "username", user.Username)
	return &res, &user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenResult, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, nil, ErrInvalidCredentials
	}

	signed, exp, err := s.Tokens.Issue(user)
	if err != nil {
		l.Error("login_failed", "reason", "token issue", "error", err)
		return nil, nil, ErrTokenIssue
	}

	l.Info("user_logged_in", "user_id", user.ID)
	return &TokenResult{Token: signed, ExpiresAt: exp}, user, nil
}

// Logout blacklists the exact token string the client presented.
func (s *AuthService) Logout(ctx context.Context, rawToken string) error {
	l := logging.FromContext(ctx).With("svc", "auth.logout")

	if err := s.Repo.Blacklist(ctx, rawToken); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			l.Warn("logout_conflict", "reason", "token already blacklisted")
			return ErrAlreadyLoggedOut
		}
		return err
	}

	l.Info("user_logged_out")
	return nil
}
