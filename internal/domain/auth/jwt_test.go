package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(DefaultJWTConfig("test-secret-do-not-use"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testJWTService()

	user := NewUser("Grace Hopper", "grace@example.com", RoleManager)
	user.Phone = "+1-555-0100"

	tokenString, expiresAt, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	uc, err := svc.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), uc.UserID)
	assert.Equal(t, "grace@example.com", uc.Email)
	assert.Equal(t, "Grace Hopper", uc.FullName)
	assert.Equal(t, "manager", uc.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer := testJWTService()
	verifier := NewJWTService(DefaultJWTConfig("a-different-secret"))

	user := NewUser("Grace Hopper", "grace@example.com", RoleAdmin)
	tokenString, _, err := issuer.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	config := DefaultJWTConfig("test-secret-do-not-use")
	config.AccessTokenTTL = -time.Minute
	svc := NewJWTService(config)

	user := NewUser("Grace Hopper", "grace@example.com", RoleUser)
	tokenString, _, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := testJWTService()

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestUserValidate(t *testing.T) {
	ctx := context.Background()

	user := NewUser("Grace Hopper", "grace@example.com", RoleUser)
	require.NoError(t, user.Validate(ctx))

	noName := NewUser("", "grace@example.com", RoleUser)
	assert.Error(t, noName.Validate(ctx))

	badEmail := NewUser("Grace Hopper", "not-an-email", RoleUser)
	assert.Error(t, badEmail.Validate(ctx))

	badRole := NewUser("Grace Hopper", "grace@example.com", Role("superuser"))
	assert.Error(t, badRole.Validate(ctx))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, NewUser("A", "a@example.com", RoleAdmin).IsStaff())
	assert.True(t, NewUser("M", "m@example.com", RoleManager).IsStaff())
	assert.False(t, NewUser("U", "u@example.com", RoleUser).IsStaff())
}
