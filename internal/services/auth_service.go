package services

import (
	"time"

	"tourmate/internal/audit"
	"tourmate/internal/auth"
	"tourmate/internal/domain"
	"tourmate/internal/domain/models"
	"tourmate/internal/repositories"
	"tourmate/internal/utils"
)

// AuthService handles operator login and account management.
type AuthService struct {
	Store     *repositories.Store
	Audit     audit.Sink
	JWTSecret string
	RequestID string
	Now       func() time.Time
}

// Login verifies credentials and issues a session token.
func (s AuthService) Login(username, password string) (string, models.User, error) {
	username = utils.TrimOrEmpty(username)
	if username == "" || password == "" {
		return "", models.User{}, domain.E(domain.KindInvalidData, "username and password are required")
	}

	s.Store.Lock()
	u, ok := s.Store.Users.Get(username)
	s.Store.Unlock()

	if !ok || !auth.CheckPassword(u.PasswordHash, password) {
		return "", models.User{}, domain.E(domain.KindAuthenticationRequired, "invalid credentials")
	}

	token, err := auth.IssueToken(s.JWTSecret, u.Username, u.Role, clock(s.Now))
	if err != nil {
		return "", models.User{}, domain.Wrap(domain.KindFileError, "sign token", err)
	}

	utils.LogEvent(s.RequestID, "AUTH", "login", username+" logged in")
	return token, u, nil
}

// RegisterInput creates an operator account.
type RegisterInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an operator account. Admin only.
func (s AuthService) Register(actor domain.Actor, in RegisterInput) (models.User, error) {
	if !actor.IsLoggedIn() {
		return models.User{}, domain.E(domain.KindAuthenticationRequired, "login required")
	}
	if actor.Role != auth.RoleAdmin {
		return models.User{}, domain.E(domain.KindPermissionDenied, "only admins may create accounts")
	}

	username := utils.TrimOrEmpty(in.Username)
	if username == "" {
		return models.User{}, domain.E(domain.KindInvalidData, "username is required")
	}
	if len(in.Password) < 6 {
		return models.User{}, domain.E(domain.KindInvalidData, "password must be at least 6 characters")
	}
	if !auth.ValidRole(in.Role) {
		return models.User{}, domain.Ef(domain.KindInvalidData, "unknown role %q", in.Role)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, domain.Wrap(domain.KindFileError, "hash password", err)
	}

	s.Store.Lock()
	defer s.Store.Unlock()

	if s.Store.Users.Exists(username) {
		return models.User{}, domain.Ef(domain.KindDuplicateID, "username %s already taken", username)
	}

	u := models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    clock(s.Now),
	}
	if err := s.Store.Apply(repositories.Staged{Users: s.Store.Users.StageAppend(u)}); err != nil {
		return models.User{}, domain.Wrap(domain.KindFileError, "save users", err)
	}

	s.Audit.Append(actor.Username, "ADD_USER", u.Username, u.Role)
	utils.LogEvent(s.RequestID, "AUTH", "register", "created "+u.Username)
	return u, nil
}

// EnsureDefaultAdmin seeds the admin account on an empty user store so a
// fresh deployment can log in.
func (s AuthService) EnsureDefaultAdmin(password string) error {
	s.Store.Lock()
	defer s.Store.Unlock()

	if len(s.Store.Users.All()) > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return domain.Wrap(domain.KindFileError, "hash password", err)
	}

	u := models.User{
		Username:     "admin",
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		CreatedAt:    clock(s.Now),
	}
	if err := s.Store.Apply(repositories.Staged{Users: s.Store.Users.StageAppend(u)}); err != nil {
		return domain.Wrap(domain.KindFileError, "save users", err)
	}

	utils.LogEvent(s.RequestID, "AUTH", "seed_admin", "default admin account created")
	return nil
}
