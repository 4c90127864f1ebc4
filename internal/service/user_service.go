package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "wishlist/internal/errors"
	"wishlist/internal/model"
	"wishlist/internal/repository"
)

const bcryptCost = 10

// UserService exposes account operations.
type UserService interface {
	Register(ctx context.Context, userName, password string) (*model.User, error)
	CheckLogin(ctx context.Context, userName, password string) (*model.User, error)
	FindByUserName(ctx context.Context, userName string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a new user with a bcrypt-hashed password. The source
// application stored passwords in plaintext; that is a defect, not behavior
// to keep.
func (s *userService) Register(ctx context.Context, userName, password string) (*model.User, error) {
	existing, err := s.repo.FindByUserName(ctx, userName)
	if err == nil && existing != nil {
		return nil, apperrors.ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		UserName:     userName,
		PasswordHash: string(hashed),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// CheckLogin verifies credentials and returns the matching user.
func (s *userService) CheckLogin(ctx context.Context, userName, password string) (*model.User, error) {
	user, err := s.repo.FindByUserName(ctx, userName)
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// FindByUserName returns the user or (nil, nil) when absent.
func (s *userService) FindByUserName(ctx context.Context, userName string) (*model.User, error) {
	user, err := s.repo.FindByUserName(ctx, userName)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByID returns the user or (nil, nil) when absent.
func (s *userService) FindByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user and cascades to all owned items. Not routed over
// HTTP; admin use only.
func (s *userService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
