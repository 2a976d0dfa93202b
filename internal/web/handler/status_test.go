package handler_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluserman/pluserman/internal/membership"
	"github.com/pluserman/pluserman/internal/web/handler"
)

func TestStatus(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: fiber.StatusOK},
		{name: "user exists", err: membership.ErrUserExists, want: fiber.StatusConflict},
		{name: "group exists", err: membership.ErrGroupExists, want: fiber.StatusConflict},
		{name: "validation", err: pkgerrors.Wrap(membership.ErrValidation, "groups missing"), want: fiber.StatusBadRequest},
		{
			name: "validation beats not found",
			err:  fmt.Errorf("%w: %w", membership.ErrValidation, membership.ErrGroupNotFound),
			want: fiber.StatusBadRequest,
		},
		{name: "user not found", err: membership.ErrUserNotFound, want: fiber.StatusNotFound},
		{name: "group not found", err: pkgerrors.Wrap(membership.ErrGroupNotFound, "x"), want: fiber.StatusNotFound},
		{name: "store failure", err: errors.New("disk I/O error"), want: fiber.StatusInternalServerError}, //nolint:goerr113
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, handler.Status(tc.err))
		})
	}
}

func TestError(t *testing.T) {
	var fiberErr *fiber.Error

	err := handler.Error(fiber.StatusNotFound, membership.ErrUserNotFound)
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusNotFound, fiberErr.Code)
	assert.Equal(t, membership.ErrUserNotFound.Error(), fiberErr.Message)

	// internals are not exposed
	err = handler.Error(fiber.StatusInternalServerError, errors.New("secret dsn")) //nolint:goerr113
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.ErrInternalServerError.Message, fiberErr.Message)
}
