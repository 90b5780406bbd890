package operation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

// fakeOperation records whether it ran and returns a configured error.
type fakeOperation struct {
	executed bool
	err      error
}

func (f *fakeOperation) Execute(ctx context.Context) error {
	f.executed = true
	return f.err
}

func (f *fakeOperation) Name() string {
	return "fake"
}

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name      string
		async     bool
		opError   error
		wantError string
	}{
		{
			name: "sync_success",
		},
		{
			name:      "sync_error",
			opError:   errors.New("boom"),
			wantError: "boom",
		},
		{
			name:  "async_success",
			async: true,
		},
		{
			name:      "async_error",
			async:     true,
			opError:   errors.New("boom"),
			wantError: "executing fake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			runner := NewRunner(&logger, tt.async)
			op := &fakeOperation{err: tt.opError}

			err := runner.Run(context.Background(), op)

			assert.True(t, op.executed)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}
