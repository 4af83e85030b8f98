//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"webstore-service/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("book already in cart")
	cause := errs.New("duplicate key value violates unique constraint")

	t.Run("sentinel is visible to errors.Is", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		require.ErrorIs(t, err, sentinel)
		require.ErrorIs(t, err, cause, "cause chain stays reachable")
	})

	t.Run("message stays the cause's", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		assert.Equal(t, cause.Error(), err.Error())
	})

	t.Run("mark survives further wrapping", func(t *testing.T) {
		err := errs.Wrap(errs.Mark(cause, sentinel), "add to cart")

		require.ErrorIs(t, err, sentinel)
	})

	t.Run("nil cause yields the bare sentinel", func(t *testing.T) {
		assert.Same(t, sentinel, errs.Mark(nil, sentinel))
	})

	t.Run("verbose formatting keeps the cause detail", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		assert.Contains(t, fmt.Sprintf("%+v", err), cause.Error())
	})

	t.Run("unrelated sentinel does not match", func(t *testing.T) {
		err := errs.Mark(cause, sentinel)

		assert.False(t, errors.Is(err, errs.New("some other failure")))
	})
}
