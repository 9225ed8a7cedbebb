package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role 令牌主体角色
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Claims JWT声明
type Claims struct {
	ID    uint   `json:"id"`
	Name  string `json:"name,omitempty"`  // 管理员用户名
	Phone string `json:"phone,omitempty"` // 客户手机号
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// JWTService JWT服务
type JWTService struct {
	secret []byte
	expiry time.Duration
}

// NewJWTService 创建JWT服务
func NewJWTService(secret string, expiry time.Duration) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// GenerateAdminToken 为管理员签发令牌
func (j *JWTService) GenerateAdminToken(id uint, username string) (string, error) {
	return j.sign(&Claims{
		ID:   id,
		Name: username,
		Role: RoleAdmin,
	})
}

// GenerateUserToken 为客户用户签发令牌
func (j *JWTService) GenerateUserToken(id uint, phone string) (string, error) {
	return j.sign(&Claims{
		ID:    id,
		Phone: phone,
		Role:  RoleUser,
	})
}

func (j *JWTService) sign(claims *Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    "tech-site",
		Subject:   fmt.Sprintf("%d", claims.ID),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.expiry)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	return signed, nil
}

// ValidateToken 验证令牌并返回声明
func (j *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("不支持的签名算法: %v", token.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("令牌验证失败: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的令牌")
	}
	return claims, nil
}

// ExtractTokenFromHeader 从Authorization头提取Bearer令牌
func ExtractTokenFromHeader(authHeader string) (string, error) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("认证头格式必须为 Bearer {token}")
	}
	return parts[1], nil
}
