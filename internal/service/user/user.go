package user

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/avolkhin/bucketlist/internal/models"
	"github.com/avolkhin/bucketlist/internal/repository"
)

type UserService struct {
	userRepo repository.UserRepo
}

func NewService(userRepo repository.UserRepo) (*UserService, error) {
	if userRepo == nil {
		return nil, errors.New("user repo must not be nil")
	}

	return &UserService{userRepo: userRepo}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (models.User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}
