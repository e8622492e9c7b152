package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		name  string
		value string
		fails bool
	}{
		{name: "filled", value: "Buy milk", fails: false},
		{name: "empty", value: "", fails: true},
		{name: "whitespace only", value: "   ", fails: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe, err := Required("title", tt.value).Check(context.Background())
			require.NoError(t, err)
			if tt.fails {
				require.NotNil(t, fe)
				assert.Equal(t, FieldError{Field: "title", Reason: ReasonBlank}, *fe)
			} else {
				assert.Nil(t, fe)
			}
		})
	}
}

func TestUnique(t *testing.T) {
	t.Run("taken", func(t *testing.T) {
		v := Unique("email", func(context.Context) (bool, error) { return true, nil })
		fe, err := v.Check(context.Background())
		require.NoError(t, err)
		require.NotNil(t, fe)
		assert.Equal(t, ReasonTaken, fe.Reason)
	})
	t.Run("free", func(t *testing.T) {
		v := Unique("email", func(context.Context) (bool, error) { return false, nil })
		fe, err := v.Check(context.Background())
		require.NoError(t, err)
		assert.Nil(t, fe)
	})
	t.Run("lookup failure aborts the run", func(t *testing.T) {
		boom := errors.New("store down")
		v := Unique("email", func(context.Context) (bool, error) { return false, boom })
		_, err := Run(context.Background(), v)
		assert.ErrorIs(t, err, boom)
	})
}

func TestConfirmed(t *testing.T) {
	fe, err := Confirmed("password_confirmation", "secret", "secret").Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fe)

	fe, err = Confirmed("password_confirmation", "secret", "other").Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fe)
	assert.Equal(t, ReasonConfirmation, fe.Reason)
}

func TestIncluded(t *testing.T) {
	allowed := []string{"todo", "doing", "done"}
	fe, err := Included("status", "doing", allowed).Check(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fe)

	fe, err = Included("status", "paused", allowed).Check(context.Background())
	require.NoError(t, err)
	require.NotNil(t, fe)
	assert.Equal(t, ReasonInclusion, fe.Reason)
}

func TestRunAggregatesInOrder(t *testing.T) {
	errs, err := Run(context.Background(),
		Required("email", ""),
		Required("password", ""),
		Confirmed("password_confirmation", "a", "b"),
	)
	require.NoError(t, err)
	require.Len(t, errs, 3)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "password", errs[1].Field)
	assert.Equal(t, "password_confirmation", errs[2].Field)
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("title"))
}

func TestErrorsMessage(t *testing.T) {
	errs := Errors{
		{Field: "title", Reason: ReasonBlank},
		{Field: "title", Reason: ReasonTaken},
	}
	assert.Equal(t, "title can't be blank, title has already been taken", errs.Error())
}
