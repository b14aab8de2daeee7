package service

import (
	"context"
	"errors"
	"gigflow/internal/entity"
	"gigflow/internal/repo"
	"gigflow/internal/repo/repo_errors"
	"gigflow/pkg/token"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repo.User
	tokens   *token.Manager
}

func NewAuthService(repos *repo.Repositories, tokens *token.Manager) *AuthService {
	return &AuthService{
		userRepo: repos.User,
		tokens:   tokens,
	}
}

// Register creates a user and returns its projection plus a signed session
// token. Only the bcrypt hash of the password is stored.
func (s *AuthService) Register(ctx context.Context, input *entity.RegisterInput) (*entity.UserOutputModel, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	model := &entity.CreateUserInput{
		Name:         input.Name,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: string(hash),
	}

	id, err := s.userRepo.CreateUser(ctx, model)
	if err != nil {
		if errors.Is(err, repo_errors.ErrAlreadyExists) {
			return nil, "", ErrEmailAlreadyTaken
		}

		return nil, "", err
	}

	user, err := s.userRepo.GetUserById(ctx, id.String())
	if err != nil {
		return nil, "", err
	}

	sessionToken, err := s.tokens.Generate(user.Id.String(), user.Email)
	if err != nil {
		return nil, "", err
	}

	return mapUser(user), sessionToken, nil
}

func (s *AuthService) Login(ctx context.Context, email string, password string) (*entity.UserOutputModel, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}

		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	sessionToken, err := s.tokens.Generate(user.Id.String(), user.Email)
	if err != nil {
		return nil, "", err
	}

	return mapUser(user), sessionToken, nil
}

func (s *AuthService) GetUserById(ctx context.Context, userId string) (*entity.UserOutputModel, error) {
	user, err := s.userRepo.GetUserById(ctx, userId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return mapUser(user), nil
}
