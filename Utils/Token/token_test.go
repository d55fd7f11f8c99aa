package Token

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contextWithAuth(token string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	return c
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	c := contextWithAuth(token)
	assert.NoError(t, TokenValid(c))

	uid, err := ExtractTokenID(c)
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestTokenValidRejectsGarbage(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")

	c := contextWithAuth("not-a-jwt")
	assert.Error(t, TokenValid(c))
}

func TestTokenValidRejectsWrongSecret(t *testing.T) {
	t.Setenv("API_SECRET", "test-secret")
	token, err := GenerateToken(1)
	require.NoError(t, err)

	t.Setenv("API_SECRET", "other-secret")
	c := contextWithAuth(token)
	assert.Error(t, TokenValid(c))
}

func TestExtractTokenFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?token=abc", nil)

	assert.Equal(t, "abc", ExtractToken(c))
}
