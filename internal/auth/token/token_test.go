package token_test

import (
	"testing"
	"time"

	autherrors "github.com/fenixfl1/CompuPay/internal/auth/errors"
	"github.com/fenixfl1/CompuPay/internal/auth/token"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParse(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	raw, exp, err := token.Generate(7, "jperez", true, token.TypeAccess, time.Hour)
	assert.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	claims, err := token.Parse(raw, token.TypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "jperez", claims.Username)
	assert.True(t, claims.IsSuperuser)

	t.Run("wrong type", func(t *testing.T) {
		_, err := token.Parse(raw, token.TypeRefresh)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		old, _, err := token.Generate(7, "jperez", false, token.TypeAccess, -time.Minute)
		assert.NoError(t, err)

		_, err = token.Parse(old, token.TypeAccess)
		assert.ErrorIs(t, err, autherrors.ErrTokenExpired)
	})

	t.Run("other secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "rotated")
		_, err := token.Parse(raw, token.TypeAccess)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}
