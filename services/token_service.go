package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"tradesman-handy-server/config"
	"tradesman-handy-server/models"
	"tradesman-handy-server/utils"
)

// TokenService issues and rotates refresh tokens and mints access tokens
type TokenService struct {
	db *gorm.DB
}

func NewTokenService(db *gorm.DB) *TokenService {
	return &TokenService{db: db}
}

// TokenPair is the access/refresh token pair handed to clients
type TokenPair struct {
	AccessToken  string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Issue creates a fresh token pair for a user and persists the refresh token
func (s *TokenService) Issue(user *models.User) (*TokenPair, error) {
	accessToken, err := utils.GenerateToken(user.ID, user.IsTradesmen)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshValue, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	refresh := models.RefreshToken{
		Token:     refreshValue,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Duration(config.AppConfig.JWT.RefreshExpiryDays) * 24 * time.Hour),
	}
	if err := s.db.Create(&refresh).Error; err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
		ExpiresIn:    int64(config.AppConfig.JWT.ExpiryHours) * 3600,
	}, nil
}

// Rotate exchanges a valid refresh token for a new pair, revoking the old one
func (s *TokenService) Rotate(refreshValue string) (*TokenPair, error) {
	var stored models.RefreshToken
	err := s.db.Preload("User").First(&stored, "token = ?", refreshValue).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("lookup refresh token: %w", err)
	}

	if !stored.IsValid() {
		return nil, ErrTokenInvalid
	}

	if err := s.db.Model(&stored).Update("is_revoked", true).Error; err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	return s.Issue(&stored.User)
}

// Revoke invalidates a refresh token (logout)
func (s *TokenService) Revoke(refreshValue string) error {
	res := s.db.Model(&models.RefreshToken{}).
		Where("token = ?", refreshValue).
		Update("is_revoked", true)
	if res.Error != nil {
		return fmt.Errorf("revoke refresh token: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}

// CleanupExpiredTokens deletes refresh tokens past their expiry. Called
// periodically from the cleanup job.
func (s *TokenService) CleanupExpiredTokens() error {
	res := s.db.Where("expires_at <= ?", time.Now()).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("Removed %d expired refresh tokens", res.RowsAffected)
	}
	return nil
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
