package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"nmjl-service/internal/config"
	pkgAuth "nmjl-service/pkg/auth"
)

func setup() {
	config.GlobalConfig = &config.Config{JWT: config.JWTConfig{Secret: "test-secret", Expire: 1}}
}

func TestAdminTokenRoundTrip(t *testing.T) {
	setup()
	token, expireAt, err := pkgAuth.GenerateAdminToken(42)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expireAt, time.Minute)

	claims, err := pkgAuth.ParseAdminToken(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.SubjectID)
	require.Equal(t, pkgAuth.ScopeCurator, claims.Scope)
}

func TestParseAdminTokenRejectsOtherScopes(t *testing.T) {
	setup()
	claims := pkgAuth.Claims{
		SubjectID: 7,
		Scope:     "player",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = pkgAuth.ParseAdminToken(token)
	require.ErrorIs(t, err, pkgAuth.ErrInvalidToken)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	setup()
	token, _, err := pkgAuth.GenerateAdminToken(1)
	require.NoError(t, err)

	config.GlobalConfig.JWT.Secret = "rotated"
	_, err = pkgAuth.ParseAdminToken(token)
	require.Error(t, err)
}
