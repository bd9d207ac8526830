package services

import (
	"context"
	"errors"
	"strings"

	"github.com/mdarmaan6204/nutri-tracker/models"
	"github.com/mdarmaan6204/nutri-tracker/repository"
	"github.com/mdarmaan6204/nutri-tracker/utils"
)

var (
	// ErrDuplicateUsername is returned on signup when the username is taken.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials is returned on login whether the user is
	// unknown or the password is wrong, so the response never signals
	// which usernames exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a verified token references a user
	// that no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

type AuthService struct {
	users  repository.UserRepository
	tokens *TokenService
}

func NewAuthService(users repository.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Signup(ctx context.Context, name, username, password string) (*models.User, string, error) {
	name = strings.TrimSpace(name)
	username = strings.TrimSpace(username)

	if name == "" || username == "" || password == "" {
		return nil, "", errValidation("name, username and password are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{Name: name, Username: username, Password: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", ErrDuplicateUsername
		}
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
