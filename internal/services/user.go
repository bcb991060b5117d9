package services

import (
	"context"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
	"inventory-system/pkg/utils"
)

type UserServiceInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error)
	FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	ChangePassword(ctx context.Context, id uint64, payload dto.ChangePasswordDTO) error
	SoftDeleteUser(ctx context.Context, id uint64) error
}

type UserService struct {
	userRepo repositories.UserRepositoryInterface
	logger   *zap.Logger
}

func NewUserService(userRepo repositories.UserRepositoryInterface, logger *zap.Logger) UserServiceInterface {
	return &UserService{userRepo: userRepo, logger: logger}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]dto.UserDTO, uint64, error) {
	users, total, err := s.userRepo.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, *toUserDTO(&users[i]))
	}
	return result, total, nil
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(user), nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint64, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrUserDisabled
	}

	name := user.Name
	login := user.Login
	if payload.Name != nil {
		name = *payload.Name
	}
	if payload.Login != nil {
		login = *payload.Login
	}

	if err := s.userRepo.UpdateUser(ctx, id, name, login); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserDTO(updated), nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uint64, payload dto.ChangePasswordDTO) error {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.Active {
		return apperrors.ErrUserDisabled
	}

	hashed, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, id, hashed); err != nil {
		return err
	}

	s.logger.Info("пароль обновлён", zap.Uint64("id_usuario", id))
	return nil
}

func (s *UserService) SoftDeleteUser(ctx context.Context, id uint64) error {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return err
	}
	if !user.Active {
		return apperrors.ErrUserDisabled
	}

	if err := s.userRepo.SoftDeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("пользователь отключён", zap.Uint64("id_usuario", id))
	return nil
}

func toUserDTO(u *entities.User) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Login:     u.Login,
		Role:      u.Role,
		Active:    u.Active,
		CreatedAt: u.CreatedAt.Format(timestampLayout),
		UpdatedAt: u.UpdatedAt.Format(timestampLayout),
	}
}
