package services

import (
	"testing"
	"time"

	"github.com/chabbasaad/4CITE-sub001/constants"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(UserInfo{UserID: 42, Role: constants.RoleEmployee}, 5)
	require.NoError(t, err)

	userID, role, err := VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	assert.Equal(t, constants.RoleEmployee, role)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	_, _, err := VerifyToken("không-phải-jwt")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	claims := Claims{
		UserInfo: UserInfo{UserID: 1, Role: constants.RoleUser},
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(jwtSecret())
	require.NoError(t, err)

	_, _, err = VerifyToken(token)
	assert.Error(t, err)
}
