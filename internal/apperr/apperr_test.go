package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	require.Equal(t, NotFound, KindOf(New(NotFound, "File not found")))
	require.Equal(t, Internal, KindOf(errors.New("plain")))

	wrapped := Wrap(UploadFailed, "Failed to upload file to storage", errors.New("boom"))
	require.Equal(t, UploadFailed, KindOf(wrapped))
}

func TestMessageOfHidesInternals(t *testing.T) {
	require.Equal(t, "File not found", MessageOf(New(NotFound, "File not found")))
	require.Equal(t, "Internal server error", MessageOf(errors.New("sql: connection refused")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(Internal, "wrapped", cause)
	require.True(t, errors.Is(err, cause))
}

func TestStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		BadRequest:      http.StatusBadRequest,
		Conflict:        http.StatusBadRequest,
		Unauthenticated: http.StatusUnauthorized,
		NotFound:        http.StatusNotFound,
		UploadFailed:    http.StatusBadGateway,
		DeleteFailed:    http.StatusBadGateway,
		Internal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		require.Equal(t, want, kind.Status())
	}
}
