package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateToken(secret, Identity{UserID: "u1", EmployeeID: "e1", Role: RoleEmployee}, time.Minute)
	require.NoError(t, err)

	identity, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "u1", EmployeeID: "e1", Role: RoleEmployee}, identity)
	assert.True(t, identity.Owns("e1"))
	assert.False(t, identity.Owns("e2"))

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpiredAndUnknownRoles(t *testing.T) {
	secret := "test-secret"

	expired, err := GenerateToken(secret, Identity{UserID: "u1", Role: RoleAdmin}, -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, expired)
	assert.Error(t, err)

	unknown, err := GenerateToken(secret, Identity{UserID: "u1", Role: "superuser"}, time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(secret, unknown)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1", Role: RoleAdmin})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(secret, unsigned)
	assert.Error(t, err)
}

func TestRolePermissions(t *testing.T) {
	employee := Identity{Role: RoleEmployee}
	admin := Identity{Role: RoleAdmin}

	assert.True(t, employee.Can(PermTimeClock))
	assert.True(t, employee.Can(PermRequestsSubmit))
	assert.False(t, employee.Can(PermRequestsReview))
	assert.False(t, employee.Can(PermPayrollWrite))
	assert.False(t, employee.Can(PermTimeManage))
	assert.True(t, admin.Can(PermTimeManage))

	for _, perm := range RolePermissions[RoleEmployee] {
		assert.True(t, admin.Can(perm), perm)
	}
	assert.False(t, Identity{Role: "guest"}.Can(PermTimeClock))
}
