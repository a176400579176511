package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	tokenString, err := GenerateJWT("secret", 42, "a@b.c")
	require.NoError(t, err)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, float64(42), claims["userId"])
	require.Equal(t, "a@b.c", claims["email"])
	require.NotNil(t, claims["exp"])
}

func TestGenerateJWTWrongSecretRejected(t *testing.T) {
	tokenString, err := GenerateJWT("secret", 1, "a@b.c")
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("other"), nil
	})
	require.Error(t, err)
}

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	require.NotEqual(t, "hunter2", hash)

	require.True(t, CheckPasswordHash("hunter2", hash))
	require.False(t, CheckPasswordHash("hunter3", hash))
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken(6)
	b := GenerateRandomToken(6)
	require.Len(t, a, 6)
	require.Len(t, b, 6)
	require.NotEqual(t, a, b)
}

func TestDecodeDataURI(t *testing.T) {
	data, contentType, err := DecodeDataURI("data:image/png;base64,aGVsbG8=")
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)
	require.Equal(t, []byte("hello"), data)

	_, _, err = DecodeDataURI("not a data uri")
	require.Error(t, err)

	_, _, err = DecodeDataURI("data:image/png;base64,%%%")
	require.Error(t, err)
}
