package core_test

import (
	"context"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/remotefs/entry"
	"github.com/jmgilman/go/remotefs/errors"
	"github.com/jmgilman/go/remotefs/fs/core"
)

func TestPathError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errors.ErrorCode
	}{
		{"not exist", fs.ErrNotExist, errors.CodeNotFound},
		{"permission", fs.ErrPermission, errors.CodeForbidden},
		{"deadline", context.DeadlineExceeded, errors.CodeTimeout},
		{"canceled", context.Canceled, errors.CodeInternal},
		{"not dir", core.ErrNotDir, errors.CodeInvalidInput},
		{"other", assert.AnError, errors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.PathError("stat", "/a/b", tt.err)
			require.Error(t, err)

			assert.Equal(t, tt.want, errors.GetCode(err))
			assert.ErrorIs(t, err, tt.err)

			var pe *fs.PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "stat", pe.Op)
			assert.Equal(t, "/a/b", pe.Path)

			var fe errors.Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "/a/b", fe.Context()["path"])
		})
	}
}

func TestPathError_Nil(t *testing.T) {
	assert.NoError(t, core.PathError("stat", "/", nil))
}

func TestPathError_Retryable(t *testing.T) {
	assert.True(t, errors.IsRetryable(core.PathError("stat", "/", context.DeadlineExceeded)))
	assert.False(t, errors.IsRetryable(core.PathError("stat", "/", fs.ErrNotExist)))
}

func TestSymlinkLoop(t *testing.T) {
	cycle := core.SymlinkLoop("/a", "/b", 2, true)
	assert.ErrorIs(t, cycle, entry.ErrSymlinkCycle)
	assert.NotErrorIs(t, cycle, entry.ErrSymlinkDepth)
	assert.Equal(t, errors.CodeSymlinkLoop, errors.GetCode(cycle))
	assert.True(t, core.IsSymlinkLoop(cycle))

	var fe errors.Error
	require.ErrorAs(t, cycle, &fe)
	assert.Equal(t, "/b", fe.Context()["target"])
	assert.Contains(t, cycle.Error(), "follow symlink /a after 2 hops")

	depth := core.SymlinkLoop("/l0", "/l41", entry.MaxSymlinkHops+1, false)
	assert.ErrorIs(t, depth, entry.ErrSymlinkDepth)
	assert.False(t, errors.IsRetryable(depth))

	// The code survives the PathError wrapping producers apply.
	wrapped := core.PathError("stat", "/a", cycle)
	assert.True(t, core.IsSymlinkLoop(wrapped))
	assert.ErrorIs(t, wrapped, entry.ErrSymlinkCycle)

	assert.False(t, core.IsSymlinkLoop(nil))
	assert.False(t, core.IsSymlinkLoop(core.PathError("stat", "/a", fs.ErrNotExist)))
}
