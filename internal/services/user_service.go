package services

import (
	"errors"
	"fmt"

	"github.com/bitwatch/bitwatch-api/internal/models"
	"github.com/bitwatch/bitwatch-api/internal/storage"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrNicknameTaken      = errors.New("nickname already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	store storage.UserStore
}

func NewUserService(store storage.UserStore) *UserService {
	return &UserService{store: store}
}

// Register hashes the password and inserts the user with the default role.
// Duplicate email or nickname surfaces from the unique constraints on insert,
// so concurrent signups cannot race past a pre-check.
func (s *UserService) Register(email, nickname, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    email,
		Nickname: nickname,
		Password: string(hash),
		Role:     models.RoleUser,
	}

	if err := s.store.Create(user); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, storage.ErrDuplicateNickname):
			return nil, ErrNicknameTaken
		}
		return nil, err
	}
	return user, nil
}

// Authenticate looks up the user by email and verifies the password.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.store.FindByEmail(email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(id uuid.UUID) (*models.User, error) {
	user, err := s.store.FindByID(id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List() ([]models.User, error) {
	return s.store.All()
}
