package steps_test

import (
	"errors"
	"testing"

	"github.com/fenixfl1/CompuPay/internal/shared/steps"
	"github.com/stretchr/testify/assert"
)

func TestList_Run(t *testing.T) {
	var l steps.List

	assert.True(t, l.Run("attach_tags", func() error { return nil }))
	assert.False(t, l.Degraded())
	assert.Equal(t, "created", l.Message("created", "created with warnings"))

	assert.False(t, l.Run("attach_users", func() error { return errors.New("user not found") }))
	assert.True(t, l.Degraded())
	assert.Equal(t, "created with warnings", l.Message("created", "created with warnings"))

	assert.Equal(t, steps.List{
		{Step: "attach_tags", OK: true},
		{Step: "attach_users", OK: false, Error: "user not found"},
	}, l)
}
