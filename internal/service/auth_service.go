package service

import (
	"errors"
	"strings"

	"github.com/bionutrex/internal/auth"
	"github.com/bionutrex/internal/db"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminExists        = errors.New("admin already exists")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrCredentialsMissing = errors.New("email and password are required")
)

// AuthService authenticates admins and issues bearer tokens.
type AuthService struct {
	db     *gorm.DB
	tokens *auth.Manager
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string
	Admin *db.Admin
}

// RegisterInput holds the fields required to create an admin.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// NewAuthService creates an AuthService.
func NewAuthService(gdb *gorm.DB, tokens *auth.Manager) *AuthService {
	return &AuthService{db: gdb, tokens: tokens}
}

// Login checks email and password and returns a signed token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsMissing
	}

	var admin db.Admin
	if err := s.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(admin.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(&admin)
}

// Register creates an admin account and logs it in.
func (s *AuthService) Register(input RegisterInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return nil, ErrCredentialsMissing
	}

	var count int64
	if err := s.db.Model(&db.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAdminExists
	}

	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := db.Admin{Email: email, Name: name, Password: hashed}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}

	return s.issue(&admin)
}

// Authenticate resolves a bearer token to a still-existing admin.
func (s *AuthService) Authenticate(token string) (*db.Admin, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}

	var admin db.Admin
	if err := s.db.First(&admin, claims.AdminID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (s *AuthService) issue(admin *db.Admin) (*Session, error) {
	token, err := s.tokens.NewToken(admin.ID)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Admin: admin}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
