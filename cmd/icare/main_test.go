package main

import (
	"errors"
	"strings"
	"testing"

	"icare/internal/api"
)

func TestRenderError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "auth expiry suggests re-login",
			err:  &api.Error{Kind: api.KindAuthExpired, StatusCode: 401},
			want: "다시 로그인해주세요",
		},
		{
			name: "timeout suggests retry",
			err:  &api.Error{Kind: api.KindTimeout},
			want: "잠시 후 다시 시도해주세요",
		},
		{
			name: "plain errors print as-is",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderError(tt.err); !strings.Contains(got, tt.want) {
				t.Errorf("renderError(%v) = %q, want substring %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestRenderErrorWrapped(t *testing.T) {
	t.Parallel()
	err := &api.Error{Kind: api.KindAuthExpired, StatusCode: 401}
	wrapped := errors.Join(errors.New("hospital list"), err)

	if got := renderError(wrapped); !strings.Contains(got, "다시 로그인해주세요") {
		t.Errorf("renderError(wrapped) = %q, expiry hint not surfaced", got)
	}
}
