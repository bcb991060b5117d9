package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/config"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/service"
	"inventory-system/pkg/utils"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error)
	Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error)
}

type AuthService struct {
	userRepo  repositories.UserRepositoryInterface
	cacheRepo repositories.CacheRepositoryInterface
	jwtSvc    service.JWTService
	cfg       *config.AuthConfig
	logger    *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	jwtSvc service.JWTService,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:  userRepo,
		cacheRepo: cacheRepo,
		jwtSvc:    jwtSvc,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*dto.UserDTO, error) {
	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	newID, err := s.userRepo.CreateUser(ctx, entities.User{
		Name:     payload.Name,
		Login:    payload.Login,
		Password: hashedPassword,
		Role:     constants.RoleUsuario,
	})
	if err != nil {
		s.logger.Warn("не удалось зарегистрировать пользователя",
			zap.String("usuario", payload.Login), zap.Error(err))
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, newID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("зарегистрирован пользователь", zap.Uint64("id_usuario", newID))
	return toUserDTO(user), nil
}

// Login с защитой от перебора: счётчик неудачных попыток в redis,
// после MaxLoginAttempts логин блокируется на LockoutDuration.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	attemptsKey := fmt.Sprintf("login_attempts:%s", payload.Login)
	attemptsStr, _ := s.cacheRepo.Get(ctx, attemptsKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxLoginAttempts {
		s.logger.Warn("логин заблокирован по количеству попыток", zap.String("usuario", payload.Login))
		return nil, apperrors.NewHttpError(
			http.StatusTooManyRequests,
			fmt.Sprintf("Слишком много попыток входа. Попробуйте через %.0f минут.", s.cfg.LockoutDuration.Minutes()),
			nil, nil,
		)
	}

	user, err := s.userRepo.FindUserByLogin(ctx, payload.Login)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.registerFailedAttempt(ctx, attemptsKey)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.ErrUserDisabled
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.registerFailedAttempt(ctx, attemptsKey)
		s.logger.Warn("неверный пароль", zap.String("usuario", payload.Login))
		return nil, apperrors.ErrInvalidCredentials
	}

	_ = s.cacheRepo.Del(ctx, attemptsKey)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("пользователь вошёл в систему", zap.Uint64("id_usuario", user.ID))
	return &dto.LoginResponseDTO{User: *toUserDTO(user), Tokens: *tokens}, nil
}

// Refresh ротирует refresh-токен: старый jti отзывается, выдаётся новая пара.
func (s *AuthService) Refresh(ctx context.Context, payload dto.RefreshDTO) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtSvc.ValidateToken(payload.RefreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	jtiKey := fmt.Sprintf("refresh_jti:%s", claims.ID)
	if _, err := s.cacheRepo.Get(ctx, jtiKey); err != nil {
		s.logger.Warn("refresh-токен отозван или неизвестен", zap.Uint64("id_usuario", claims.UserID))
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.Active {
		return nil, apperrors.ErrUserDisabled
	}

	_ = s.cacheRepo.Del(ctx, jtiKey)
	return s.issueTokens(ctx, user)
}

func (s *AuthService) issueTokens(ctx context.Context, user *entities.User) (*dto.TokenPairDTO, error) {
	access, refresh, refreshJTI, err := s.jwtSvc.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.cacheRepo.Set(ctx,
		fmt.Sprintf("refresh_jti:%s", refreshJTI), user.ID, s.jwtSvc.GetRefreshTokenTTL(),
	); err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *AuthService) registerFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cacheRepo.Incr(ctx, key)
	if err != nil {
		return
	}
	if attempts == 1 {
		_, _ = s.cacheRepo.Expire(ctx, key, s.cfg.LockoutDuration)
	}
}
