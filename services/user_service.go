package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tradesman-handy-server/models"
	"tradesman-handy-server/utils"
)

// UserService handles registration, login and user lookups
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// RegisterInput carries the fields for a new user account
type RegisterInput struct {
	Email       string
	FirstName   string
	LastName    string
	Password    string
	IsTradesmen bool
	PhoneNumber *string
	Address     *string
}

// Register creates a new user with a hashed password. Email addresses are
// unique.
func (s *UserService) Register(input RegisterInput) (*models.User, error) {
	var existing models.User
	if err := s.db.First(&existing, "email = ?", input.Email).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		IsTradesmen:  input.IsTradesmen,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		IsActive:     true,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Authenticate checks the credentials and returns the user on success
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// FindByID returns a user by id
func (s *UserService) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return &user, nil
}
