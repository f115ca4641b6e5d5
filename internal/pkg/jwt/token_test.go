package jwt

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waithaka/dukasoko/internal/pkg/models"
)

func testConfig() *models.Config {
	return &models.Config{
		JWT: models.JWTConfig{
			Secret:     "test-secret-key",
			Expiration: 60,
			Issuer:     "dukasoko-api",
		},
	}
}

func TestGenerateToken(t *testing.T) {
	cfg := testConfig()
	userID := uuid.New()

	tokenString, expiresAt, err := GenerateToken(userID, "254712345678", "customer", cfg)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := ValidateToken(tokenString, cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), (*claims)["user_id"])
	assert.Equal(t, "254712345678", (*claims)["phone"])
	assert.Equal(t, "customer", (*claims)["role"])
	assert.Equal(t, "dukasoko-api", (*claims)["iss"])
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := testConfig()

	tokenString, _, err := GenerateToken(uuid.New(), "254712345678", "customer", cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(tokenString, "other-secret")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestValidateToken_Expired(t *testing.T) {
	cfg := testConfig()

	claims := jwtlib.MapClaims{
		"user_id": uuid.New().String(),
		"exp":     time.Now().Add(-time.Hour).Unix(),
		"iss":     cfg.JWT.Issuer,
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)

	parsed, err := ValidateToken(tokenString, cfg.JWT.Secret)
	assert.Error(t, err)
	assert.Nil(t, parsed)
}

func TestValidateToken_Malformed(t *testing.T) {
	parsed, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
	assert.Nil(t, parsed)
}
