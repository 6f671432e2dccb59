package user

import (
	"context"

	"vastra-be/internal/logger"
	"vastra-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     Role
}

type Service interface {
	Register(ctx context.Context, input RegisterInput) (string, *Profile, error)
	Login(ctx context.Context, email, password string) (string, *Profile, error)
	GetProfile(ctx context.Context) (*Profile, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (string, *Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "Register"),
		zap.String("email", input.Email),
	)

	if input.Role == "" {
		input.Role = RoleBuyer
	}
	if !ValidRole(input.Role) {
		return "", nil, ErrInvalidRole
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	p := &Profile{
		ID:       uuid.New(),
		Email:    input.Email,
		Password: hashed,
		FullName: input.FullName,
		Role:     input.Role,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create profile", zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(created.ID, created.Role, created.Email)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", nil, err
	}

	log.Info("signup completed", zap.String("user_id", created.ID.String()))
	return token, created, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("service", "User"),
		zap.String("method", "Login"),
	)

	p, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Info("email not found")
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, p.Password) {
		log.Info("password mismatch")
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(p.ID, p.Role, p.Email)
	if err != nil {
		return "", nil, err
	}

	return token, p, nil
}

func (s *service) GetProfile(ctx context.Context) (*Profile, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrProfileNotFound
	}

	return s.repo.GetProfile(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, params UpdateProfileParams) (*Profile, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrProfileNotFound
	}

	return s.repo.UpdateProfile(ctx, userID, params)
}
