package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"meal-recommender/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 註冊、登入與 token 驗證
type Service struct {
	users      UserStore
	tokens     *JWTManager
	bcryptCost int
}

// NewService 創建認證服務
func NewService(users UserStore, tokens *JWTManager, bcryptCost int) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
	}
}

// Register 建立新帳號
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, common.ErrMissingFields
	}

	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	common.LogInfo("使用者註冊",
		zap.Int64("user_id", user.ID),
		zap.String("request_id", common.RequestIDFrom(ctx)),
	)
	return user, nil
}

// Login 驗證帳密並簽發 token
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, common.ErrMissingFields
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !CheckPassword(user.PasswordHash, req.Password) {
		return nil, common.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLogin = &now

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user}, nil
}

// Authenticate 由 token 取得使用者
func (s *Service) Authenticate(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, common.ErrTokenMissing
	}
	userID, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return s.users.GetUserByID(ctx, userID)
}
