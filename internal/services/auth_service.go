package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/auth"
	"github.com/justsurfingit/job-board/internal/dtos"
	"github.com/justsurfingit/job-board/internal/events"
	"github.com/justsurfingit/job-board/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	DB      *gorm.DB
	Events  events.Publisher
	Tokens  *auth.TokenManager
	CodeTTL time.Duration

	now func() time.Time
}

func NewAuthService(db *gorm.DB, publisher events.Publisher, tokens *auth.TokenManager, codeTTL time.Duration) *AuthService {
	return &AuthService{
		DB:      db,
		Events:  publisher,
		Tokens:  tokens,
		CodeTTL: codeTTL,
		now:     time.Now,
	}
}

// Register creates an inactive account and its confirmation code.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error) {
	log := logrus.WithField("username", req.Username)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	var code models.EmailConfirmationCode
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR LOWER(email) = LOWER(?)", req.Username, req.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrUserAlreadyExists
		}

		var role models.Role
		err := tx.Where("name = ?", req.Role).First(&role).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotExists
		}
		if err != nil {
			return err
		}

		user = models.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: string(hash),
			IsActive:     false,
			RoleID:       role.ID,
		}
		if err := tx.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		code = s.newCode(user.ID)
		if err := tx.Create(&code).Error; err != nil {
			return fmt.Errorf("create confirmation code: %w", err)
		}
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("registration failed")
		return nil, err
	}

	log.WithField("user_id", user.ID).Info("user registered")
	events.Emit(ctx, s.Events, events.UserRegistered, map[string]any{
		"user_id":    user.ID,
		"email":      user.Email,
		"code":       code.Code,
		"expiration": code.Expiration,
	})
	return &user, nil
}

func (s *AuthService) newCode(userID uint) models.EmailConfirmationCode {
	return models.EmailConfirmationCode{
		Code:       uuid.NewString(),
		UserID:     userID,
		Expiration: s.now().Add(s.CodeTTL).Unix(),
	}
}

// ConfirmRegistration activates the account that owns code. An expired code is
// replaced by a fresh one and ErrConfirmationCodeExpired is returned.
func (s *AuthService) ConfirmRegistration(ctx context.Context, code string) error {
	var stored models.EmailConfirmationCode
	err := s.DB.WithContext(ctx).Preload("User").Where("code = ?", code).First(&stored).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrConfirmationCodeNotExists
	}
	if err != nil {
		return err
	}

	if s.now().Unix() > stored.Expiration {
		renewed := s.newCode(stored.UserID)
		err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&stored).Error; err != nil {
				return err
			}
			return tx.Create(&renewed).Error
		})
		if err != nil {
			return err
		}
		logrus.WithField("user_id", stored.UserID).Info("confirmation code expired, issued a new one")
		events.Emit(ctx, s.Events, events.UserConfirmationRenewed, map[string]any{
			"user_id":    stored.UserID,
			"email":      stored.User.Email,
			"code":       renewed.Code,
			"expiration": renewed.Expiration,
		})
		return ErrConfirmationCodeExpired
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", stored.UserID).Update("is_active", true).Error; err != nil {
			return err
		}
		return tx.Delete(&stored).Error
	})
	if err != nil {
		return err
	}
	logrus.WithField("user_id", stored.UserID).Info("registration confirmed")
	return nil
}

// Login checks the credentials of an active user and issues an access token.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (string, time.Time, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Preload("Role.Permissions").Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithField("username", req.Username).Warn("login with unknown username")
		return "", time.Time{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", time.Time{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil || !user.IsActive {
		logrus.WithField("username", req.Username).Warn("invalid credentials")
		return "", time.Time{}, ErrInvalidCredentials
	}

	return s.Tokens.Issue(user.ID, user.Username, user.Role.Name, user.Role.Codenames())
}
