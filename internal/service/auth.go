package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ojt-tracker/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrBadCredentials = errors.New("invalid email or password")

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return &u, nil
}

// Register creates the user and its profile row in one transaction.
func (s *AuthService) Register(ctx context.Context, email, password, fullName, program string) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{Email: email, Password: string(hash)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			if isDuplicateErr(err) {
				return fmt.Errorf("%w: email already registered", ErrInvalidInput)
			}
			return fmt.Errorf("insert user: %w", err)
		}
		profile := model.Profile{ID: u.ID, FullName: fullName, Program: program}
		if err := tx.Create(&profile).Error; err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID int) (*model.User, error) {
	var u model.User
	if err := s.db.WithContext(ctx).First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

// UpdatePassword re-verifies the current password before writing the new
// hash.
func (s *AuthService) UpdatePassword(ctx context.Context, userID int, current, next string) error {
	u, err := s.CurrentUser(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(current)) != nil {
		return ErrBadCredentials
	}
	if len(next) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	err = s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("password", string(hash)).Error
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int) (*model.Profile, error) {
	var p model.Profile
	if err := s.db.WithContext(ctx).First(&p, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query profile: %w", err)
	}
	return &p, nil
}

// UpdateProfile writes name, program and theme preference. An empty theme
// means "follow the OS preference" on the client.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int, fullName, program, theme string) (*model.Profile, error) {
	switch theme {
	case "", "light", "dark":
	default:
		return nil, fmt.Errorf("%w: theme must be light or dark", ErrInvalidInput)
	}
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(p).Updates(map[string]interface{}{
		"full_name":  fullName,
		"program":    program,
		"theme":      theme,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return p, nil
}
