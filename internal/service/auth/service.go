package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	userRepo "github.com/m04kA/PTM-BookingService/internal/infra/storage/user"
	"github.com/m04kA/PTM-BookingService/internal/service/auth/models"
)

// dummyHash сравнивается с паролем для неизвестного логина, чтобы время ответа не выдавало его отсутствие
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3ZE2i5aGJ3bOEQZq3R3lQ0a")

// Service проверка учётных данных администратора
type Service struct {
	userRepo UserRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса авторизации
func NewService(userRepo UserRepository, logger Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Authenticate проверяет логин и пароль
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {
	_, err := s.Login(ctx, &models.LoginRequest{Username: username, Password: password})
	if errors.Is(err, ErrInvalidCredentials) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login проверяет учётные данные и возвращает пользователя
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req == nil || req.Username == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
			s.logger.Warn("Login: unknown user=%q", req.Username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to get user=%q: %v", req.Username, err)
		return nil, fmt.Errorf("%w: get user: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.logger.Error("Login: stored hash for user=%q is unusable: %v", req.Username, err)
		} else {
			s.logger.Warn("Login: wrong password for user=%q", req.Username)
		}
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user=%q authenticated", req.Username)
	return &models.LoginResponse{
		Success: true,
		User:    models.FromDomainUser(user),
	}, nil
}

// HashPassword возвращает bcrypt хеш пароля для конфигурации
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	return string(hash), nil
}
