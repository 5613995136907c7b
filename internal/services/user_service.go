package services

import (
	"context"
	"fmt"

	"bulletinboard/internal/models"
)

type UserFullStore interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u models.User) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type UserService struct {
	Users UserFullStore
	Names *NameCache
}

func (s *UserService) CreateUser(ctx context.Context, req models.UserRequest) (models.User, error) {
	if req.Name == "" || req.Email == "" {
		return models.User{}, fmt.Errorf("%w: name and email are required", models.ErrValidation)
	}
	taken, err := s.Users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, fmt.Errorf("%w: %q", models.ErrDuplicateEmail, req.Email)
	}
	return s.Users.CreateUser(ctx, models.User{Name: req.Name, Email: req.Email, Phone: req.Phone})
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	return s.Users.GetUserByID(ctx, id)
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Users.ListUsers(ctx)
}

func (s *UserService) UpdateUser(ctx context.Context, id int64, req models.UserRequest) (models.User, error) {
	current, err := s.Users.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if req.Name != "" {
		current.Name = req.Name
	}
	if req.Email != "" && req.Email != current.Email {
		taken, err := s.Users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, fmt.Errorf("%w: %q", models.ErrDuplicateEmail, req.Email)
		}
		current.Email = req.Email
	}
	if req.Phone != "" {
		current.Phone = req.Phone
	}
	updated, err := s.Users.UpdateUser(ctx, current)
	if err != nil {
		return models.User{}, err
	}
	if err := s.Names.Invalidate(ctx, "user_name", id); err != nil {
		return models.User{}, err
	}
	return updated, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.Users.DeleteUser(ctx, id); err != nil {
		return err
	}
	return s.Names.Invalidate(ctx, "user_name", id)
}
