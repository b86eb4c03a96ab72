package service

import (
	"errors"
	"strings"

	"github.com/atelierhq/internal/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound      = errors.New("admin user not found")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AdminService manages the admin_users table: signup, login and the
// existence lookups the session guard runs on every request.
type AdminService struct {
	db *gorm.DB
}

// SignupInput represents a new account request.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// NewAdminService creates an AdminService instance.
func NewAdminService(gdb *gorm.DB) *AdminService {
	return &AdminService{db: gdb}
}

// Signup creates an admin user. The very first account is promoted to the
// admin role; everyone after that starts as an editor.
func (s *AdminService) Signup(input SignupInput) (*db.AdminUser, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, validationErr("email", "a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, validationErr("password", "password must be at least 8 characters")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.AdminUser{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hashed),
	}

	// The count and the insert share a transaction so two racing first
	// signups cannot both claim the admin role.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&db.AdminUser{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrEmailTaken
		}

		var total int64
		if err := tx.Model(&db.AdminUser{}).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			user.Role = db.RoleAdmin
		} else {
			user.Role = db.RoleEditor
		}

		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate checks email and password, returning the matching user.
func (s *AdminService) Authenticate(email, password string) (*db.AdminUser, error) {
	var user db.AdminUser
	normalized := strings.ToLower(strings.TrimSpace(email))
	if err := s.db.Where("email = ?", normalized).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GetByID fetches an admin user by auth subject id. The guard treats
// ErrAdminNotFound as "authenticated but not an admin".
func (s *AdminService) GetByID(id string) (*db.AdminUser, error) {
	var user db.AdminUser
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Count returns the number of registered admin users.
func (s *AdminService) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&db.AdminUser{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
