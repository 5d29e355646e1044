package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"Maqal-Backend/domain"
	"Maqal-Backend/entities"
	"Maqal-Backend/internal/utils"
	"Maqal-Backend/internal/utils/mailing"
	"Maqal-Backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		freeLimit      int
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		freeLimit:      utils.GetConfigInt("FREE_CONTENT_LIMIT", domain.DefaultFreeContentLimit),
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegisterResponse, error) {
	exists, err := s.userRepository.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Account starts with zero balance, zero consumed quota and no
	// unlocked content.
	newUser := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
		Timestamp: entities.Timestamp{
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return nil, err
	}

	return &domain.RegisterResponse{
		ID:    newUser.ID.String(),
		Name:  newUser.Name,
		Email: newUser.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrCredentialsInvalid
	}

	role := user.Role
	if user.IsAdmin {
		role = domain.RoleAdmin
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), role)
	return &domain.LoginResponse{
		Token: token,
		Role:  role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.ProfileResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var categories []string
	if user.PreferredCategories != "" {
		categories = strings.Split(user.PreferredCategories, ",")
	}

	return &domain.ProfileResponse{
		ID:                  user.ID.String(),
		Name:                user.Name,
		Email:               user.Email,
		PhoneNumber:         user.PhoneNumber,
		CoinBalance:         user.CoinBalance,
		FreeContentConsumed: user.FreeContentConsumed,
		FreeContentLimit:    s.freeLimit,
		ProfileComplete:     user.ProfileComplete,
		PreferredCategories: categories,
		IsAdmin:             user.IsAdmin,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req domain.UpdateProfileRequest) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if len(req.PreferredCategories) > 0 {
		user.PreferredCategories = strings.Join(req.PreferredCategories, ",")
	}

	if user.Name != "" && user.PreferredCategories != "" {
		user.ProfileComplete = true
	}

	user.UpdatedAt = time.Now()
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	token, err := s.jwtService.GenerateTokenForgetPassword(map[string]any{
		"user_id": user.ID.String(),
	}, time.Minute*30)
	if err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Hello %s,</p><p>Click <a href=\"%s\">here</a> to reset your password. The link expires in 30 minutes.</p>",
		user.Name, resetLink,
	)

	return mailing.SendMail(user.Email, "Reset your password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenForgetPassword(req.Token)
	if err != nil {
		return err
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	user.UpdatedAt = time.Now()
	return s.userRepository.UpdateUser(ctx, user)
}
