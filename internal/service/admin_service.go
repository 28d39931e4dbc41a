package service

import (
	"context"
	"errors"
	"time"

	"edu-counsel-go/internal/model"
	"edu-counsel-go/internal/repository"
	"edu-counsel-go/pkg/database"
	"edu-counsel-go/pkg/hash"
	"edu-counsel-go/pkg/token"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ErrInvalidCredentials 统一表示登录失败，不区分账号不存在与密码错误。
var ErrInvalidCredentials = errors.New("invalid credentials")

// AdminService 接口定义了管理员账号与令牌相关的业务操作。
type AdminService interface {
	Register(email, password, fullName string) (*model.Admin, error)
	Login(email, password string) (accessToken, refreshToken string, err error)
	GetByEmail(email string) (*model.Admin, error)
	Logout(tokenString string) error
	IsTokenBlacklisted(tokenString string) bool
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
}

type adminService struct {
	adminRepo  repository.AdminRepository
	jwtManager *token.JWTManager
}

// NewAdminService 创建一个新的 AdminService 实例。
func NewAdminService(adminRepo repository.AdminRepository, jwtManager *token.JWTManager) AdminService {
	return &adminService{adminRepo: adminRepo, jwtManager: jwtManager}
}

// Register 创建一个新的管理员账号，邮箱重复时报错。
func (s *adminService) Register(email, password, fullName string) (*model.Admin, error) {
	_, err := s.adminRepo.FindByEmail(email)
	if err == nil {
		return nil, errors.New("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.Admin{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
		Role:     model.RoleAdmin,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Login 校验凭证并签发 access token 与 refresh token。
func (s *adminService) Login(email, password string) (accessToken, refreshToken string, err error) {
	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredentials
		}
		return "", "", err
	}

	if !hash.CheckPasswordHash(password, admin.Password) {
		return "", "", ErrInvalidCredentials
	}

	accessToken, err = s.jwtManager.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *adminService) GetByEmail(email string) (*model.Admin, error) {
	return s.adminRepo.FindByEmail(email)
}

// Logout 将 token 加入 Redis 黑名单，过期时间取 token 的剩余有效期。
func (s *adminService) Logout(tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		return err
	}
	expiration := time.Until(claims.ExpiresAt.Time)
	if expiration <= 0 {
		return nil
	}
	return database.RDB.Set(context.Background(), "blacklist:"+tokenString, "true", expiration).Err()
}

// IsTokenBlacklisted 检查 token 是否已登出。Redis 异常时放行，
// token 本身的签名与过期校验仍然生效。
func (s *adminService) IsTokenBlacklisted(tokenString string) bool {
	_, err := database.RDB.Get(context.Background(), "blacklist:"+tokenString).Result()
	if err == redis.Nil {
		return false
	}
	return err == nil
}

// RefreshToken 验证 refresh token 并签发新的令牌对。
func (s *adminService) RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error) {
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	admin, err := s.adminRepo.FindByEmail(claims.Email)
	if err != nil {
		return "", "", errors.New("admin not found")
	}

	newAccessToken, err = s.jwtManager.GenerateToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", "", err
	}
	newRefreshToken, err = s.jwtManager.GenerateRefreshToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		return "", "", err
	}

	return newAccessToken, newRefreshToken, nil
}
