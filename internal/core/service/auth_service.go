package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenfield-farms/farm-manager/internal/core/domain"
	"github.com/greenfield-farms/farm-manager/internal/core/ports"
)

const minPasswordLen = 8

// AuthService implements registration, sign-in and the session lifecycle.
// Tokens carry only the session id. Every Resolve loads the session, which
// slides its TTL, and re-reads the account, so logouts, role changes and
// removed accounts take effect on the next request.
type AuthService struct {
	users     ports.UserRepository
	sessions  ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a customer account. Self-registration never grants staff roles.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.create(ctx, in, domain.RoleCustomer)
}

// Provision creates an account with any role. Callers gate it to administrators.
func (s *AuthService) Provision(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, in, role)
}

func (s *AuthService) create(ctx context.Context, in ports.RegisterInput, role domain.Role) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case email == "":
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	case strings.TrimSpace(in.FullName) == "":
		return nil, fmt.Errorf("%w: full_name is required", domain.ErrValidation)
	case len(in.Password) < minPasswordLen:
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Email:        email,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account created")
	return created, nil
}

// Login checks credentials, opens a session and signs a token for it.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		Identity:  user.Identity(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}
	if err := s.sessions.Save(ctx, session, s.tokenTTL); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	token, err := s.generateToken(session)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("session_id", session.ID).Msg("signed in")
	return &ports.LoginResult{Token: token, Session: session}, nil
}

// Logout discards the session. Logging out twice is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("signed out")
	return nil
}

// Resolve validates token, loads its session (refreshing the session TTL) and
// returns the account's current identity and the session id.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Identity, string, error) {
	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid || claims.ID == "" {
		return nil, "", domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Load(ctx, claims.ID, s.tokenTTL)
	if err != nil {
		return nil, "", err
	}

	// re-read the account so role changes and removals apply to live sessions
	user, err := s.users.FindByID(ctx, session.Identity.ID)
	if errors.Is(err, domain.ErrUserNotFound) {
		if derr := s.sessions.Delete(ctx, session.ID); derr != nil && !errors.Is(derr, domain.ErrSessionNotFound) {
			s.log.Warn().Err(derr).Str("session_id", session.ID).Msg("drop session of removed account")
		}
		return nil, "", domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, "", err
	}

	identity := user.Identity()
	return &identity, session.ID, nil
}

func (s *AuthService) generateToken(session *domain.Session) (string, error) {
	// no exp: the session's sliding TTL alone decides when the token stops working
	claims := jwt.RegisteredClaims{
		ID:       session.ID,
		Subject:  session.Identity.ID,
		IssuedAt: jwt.NewNumericDate(session.CreatedAt),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
