package service

import (
	"context"

	"github.com/iliyamo/music-request-api/internal/model"
	"github.com/iliyamo/music-request-api/internal/repository"
)

type UserService struct {
	users *repository.UserRepo
}

func NewUserService(users *repository.UserRepo) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.ListAll(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}
