package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/clinic/clinic/internal/platform/auth"
	"github.com/clinic/clinic/internal/platform/db"
	"github.com/clinic/clinic/internal/platform/validate"
)

// ErrInvalidCredentials covers every authentication failure so the response
// never reveals which part was wrong.
var ErrInvalidCredentials = fmt.Errorf("invalid email or password")

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type Service struct {
	users  Repository
	tokens *auth.TokenIssuer
	logger zerolog.Logger
}

func NewService(users Repository, tokens *auth.TokenIssuer, logger zerolog.Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

var validRoles = map[string]bool{
	auth.RoleAdmin: true, auth.RoleStaff: true, auth.RolePatient: true,
}

// Login authenticates a credential pair. allowedRoles restricts which account
// kinds may use the endpoint (the admin login rejects patient accounts and
// vice versa). A bcrypt comparison runs on every path so failures take the
// same time whether or not the account exists.
func (s *Service) Login(ctx context.Context, creds Credentials, allowedRoles ...string) (*LoginResult, error) {
	u, err := s.users.GetByEmail(ctx, creds.Email)
	if err != nil {
		if db.IsNotFound(err) {
			auth.CheckDummyPassword(creds.Password)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, creds.Password) {
		if err := s.users.IncrementFailedLogins(ctx, u.ID); err != nil {
			s.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("record failed login")
		}
		return nil, ErrInvalidCredentials
	}

	if !u.Active {
		return nil, ErrInvalidCredentials
	}

	allowed := false
	for _, role := range allowedRoles {
		if u.Role == role {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(u.ID, u.Role, u.PatientID)
	if err != nil {
		return nil, err
	}
	if err := s.users.RecordLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("record login")
	}
	u.FailedLoginCount = 0
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

// CreateUser registers an account with a hashed password.
func (s *Service) CreateUser(ctx context.Context, u *User, password string) error {
	if strings.TrimSpace(u.Email) == "" {
		return validate.Errorf("email is required")
	}
	if !validRoles[u.Role] {
		return validate.Errorf("invalid role: %s", u.Role)
	}
	if u.Role == auth.RolePatient && u.PatientID == nil {
		return validate.Errorf("patient accounts require patient_id")
	}
	if len(password) < 8 {
		return validate.Errorf("password must be at least 8 characters")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Active = true
	return s.users.Create(ctx, u)
}
