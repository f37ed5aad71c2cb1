package auth_test

import (
	"testing"
	"time"

	"taskdeck/internal/auth"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	secret := []byte("test-secret")
	tenantID := uuid.New().String()

	token, err := auth.GenerateToken(tenantID, secret, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsed, err := auth.ParseToken(token, secret)
	assert.NoError(t, err)
	assert.Equal(t, tenantID, parsed)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.GenerateToken(uuid.New().String(), []byte("right-secret"), time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseToken(token, []byte("wrong-secret"))
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := auth.GenerateToken(uuid.New().String(), secret, -time.Hour)
	assert.NoError(t, err)

	_, err = auth.ParseToken(token, secret)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := auth.ParseToken("not-a-token", []byte("test-secret"))
	assert.Error(t, err)
}
