package user

import (
	"context"
	"errors"
	"strings"

	"foodgram-backend/domain"
	"foodgram-backend/entities"
	"foodgram-backend/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		GetUser(ctx context.Context, id string, callerID string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, p domain.PaginationRequest, callerID string) ([]domain.UserResponse, int64, error)
		ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error
		ToUserResponses(ctx context.Context, users []*entities.User, callerID uuid.UUID) ([]domain.UserResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		hashCost       int
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		hashCost:       bcrypt.DefaultCost,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if taken {
		return domain.RegisterResponse{}, domain.ErrUsernameTaken
	}

	taken, err = s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if taken {
		return domain.RegisterResponse{}, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		Username:  req.Username,
		Email:     email,
		Password:  string(hash),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race with a concurrent registration
			return domain.RegisterResponse{}, domain.ErrUsernameTaken
		}
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		Email:     user.Email,
		ID:        user.ID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.TokenResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TokenResponse{}, domain.ErrInvalidCredentials
		}
		return domain.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.TokenResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String())
	if err != nil {
		return domain.TokenResponse{}, err
	}
	return domain.TokenResponse{AuthToken: token}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	return s.GetUser(ctx, userID, userID)
}

func (s *userService) GetUser(ctx context.Context, id string, callerID string) (domain.UserResponse, error) {
	userID, err := domain.ParseID(id, domain.ErrUserNotFound)
	if err != nil {
		return domain.UserResponse{}, err
	}
	caller, err := domain.ParseCallerID(callerID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	res, err := s.ToUserResponses(ctx, []*entities.User{user}, caller)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return res[0], nil
}

func (s *userService) GetUsers(ctx context.Context, p domain.PaginationRequest, callerID string) ([]domain.UserResponse, int64, error) {
	caller, err := domain.ParseCallerID(callerID)
	if err != nil {
		return nil, 0, err
	}

	users, count, err := s.userRepository.GetUsers(ctx, p.Page, p.Limit)
	if err != nil {
		return nil, 0, err
	}

	res, err := s.ToUserResponses(ctx, users, caller)
	if err != nil {
		return nil, 0, err
	}
	return res, count, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID string, req domain.ChangePasswordRequest) error {
	id, err := domain.ParseCallerID(userID)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.ErrAuthRequired
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTokenInvalid
		}
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrInvalidCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, id, string(hash))
}

// ToUserResponses renders users with is_subscribed relative to callerID.
func (s *userService) ToUserResponses(ctx context.Context, users []*entities.User, callerID uuid.UUID) ([]domain.UserResponse, error) {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	subscribed, err := s.userRepository.SubscribedAuthorIDs(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, domain.UserResponse{
			Email:        u.Email,
			ID:           u.ID.String(),
			Username:     u.Username,
			FirstName:    u.FirstName,
			LastName:     u.LastName,
			IsSubscribed: subscribed[u.ID],
		})
	}
	return res, nil
}
