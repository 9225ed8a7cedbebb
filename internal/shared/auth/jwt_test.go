package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateAdminToken(7, "admin")
	require.NoError(t, err, "签发管理员令牌失败")

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err, "验证令牌失败")
	assert.Equal(t, uint(7), claims.ID)
	assert.Equal(t, "admin", claims.Name)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestUserTokenRole(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateUserToken(3, "13812345678")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RoleUser, claims.Role, "客户令牌不应携带管理员角色")
	assert.Equal(t, "13812345678", claims.Phone)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateAdminToken(1, "admin")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err, "密钥不匹配应验证失败")
}

func TestValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)

	token, err := svc.GenerateAdminToken(1, "admin")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err, "过期令牌应验证失败")
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("abc.def.ghi")
	assert.Error(t, err, "缺少Bearer前缀应报错")

	_, err = ExtractTokenFromHeader("")
	assert.Error(t, err)
}
