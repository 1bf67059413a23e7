package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/studyhive-api/internal/models"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
)

func newTestAuthService() *AuthService {
	return NewAuthService(nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "studyhive-test",
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	svc := newTestAuthService()

	resp, err := svc.IssueToken(context.Background(), models.TokenRequest{Email: "student@studyhive.io", Name: "Student"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "student@studyhive.io", claims.Email)
	assert.Equal(t, "student@studyhive.io", claims.Subject)
	assert.Equal(t, "studyhive-test", claims.Issuer)
}

func TestIssueTokenRequiresEmail(t *testing.T) {
	svc := newTestAuthService()

	_, err := svc.IssueToken(context.Background(), models.TokenRequest{Name: "nobody"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.IssueToken(context.Background(), models.TokenRequest{Email: "not-an-email"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestAuthService()
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	resp, err := svc.IssueToken(context.Background(), models.TokenRequest{Email: "student@studyhive.io"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	svc := newTestAuthService()
	other := NewAuthService(nil, nil, AuthConfig{AccessTokenSecret: "other"})

	resp, err := other.IssueToken(context.Background(), models.TokenRequest{Email: "student@studyhive.io"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	svc := newTestAuthService()
	claims := &models.JWTClaims{
		Email: "student@studyhive.io",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(raw)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
