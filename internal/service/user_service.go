package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/TheoInCodeLand/casalinga-tours/internal/domain"
	"github.com/TheoInCodeLand/casalinga-tours/internal/repo/postgres"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	MakeAdmin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id, actorID int64) error
}

type userService struct {
	userRepo postgres.UserRepository
}

func NewUserService(userRepo postgres.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) MakeAdmin(ctx context.Context, id int64) error {
	if err := s.userRepo.UpdateRole(ctx, id, domain.RoleAdmin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to promote user: %w", err)
	}
	logger.InfoContext(ctx, "User promoted to admin", "user_id", id)
	return nil
}

// Delete removes a user account. An admin cannot remove their own account,
// which guarantees at least one admin survives the operation.
func (s *userService) Delete(ctx context.Context, id, actorID int64) error {
	if id == actorID {
		return domain.ErrSelfDelete
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
