package apperr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := errors.New("insufficient stock")

	err := Wrap(BadRequestCode, "only 2 left", sentinel)

	require.ErrorIs(t, err, sentinel, "wrap後errors.Is要能認出sentinel")
	require.Equal(t, "only 2 left: insufficient stock", err.Error())
}

func TestCodeOf(t *testing.T) {
	require.Equal(t, NotFoundCode, CodeOf(New(NotFoundCode, "gone")))
	require.Equal(t, BadRequestCode, CodeOf(Wrap(BadRequestCode, "bad", errors.New("x"))))
	require.Equal(t, InternalCode, CodeOf(errors.New("plain error")), "非AppError一律視為internal")
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Code]int{
		BadRequestCode:      http.StatusBadRequest,
		UnauthenticatedCode: http.StatusUnauthorized,
		NotFoundCode:        http.StatusNotFound,
		TooManyRequestsCode: http.StatusTooManyRequests,
		UpstreamCode:        http.StatusInternalServerError,
		InternalCode:        http.StatusInternalServerError,
	}
	for code, status := range cases {
		require.Equal(t, status, code.HTTPStatus(), "code %d", code)
	}
}

func TestNewf(t *testing.T) {
	err := Newf(BadRequestCode, "invalid status: %s", "refunded")

	require.Equal(t, "invalid status: refunded", err.Msg)
}
