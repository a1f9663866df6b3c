package exitcode_test

import (
	"errors"
	"fmt"
	"testing"

	"tasky/internal/exitcode"
	"tasky/internal/service"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitcode.Success},
		{service.NewError(service.KindValidation, "bad"), exitcode.UserError},
		{service.NewError(service.KindNotFound, "gone"), exitcode.UserError},
		{service.ErrNoSession, exitcode.AuthError},
		{fmt.Errorf("wrapped: %w", service.NewError(service.KindAuth, "expired")), exitcode.AuthError},
		{service.NewError(service.KindTransport, "down"), exitcode.BackendError},
		{service.NewError(service.KindRemote, "boom"), exitcode.BackendError},
		{errors.New("plain"), exitcode.BackendError},
	}
	for _, tt := range tests {
		if got := exitcode.FromError(tt.err); got != tt.want {
			t.Errorf("FromError(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
