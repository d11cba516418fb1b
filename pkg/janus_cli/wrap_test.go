// pkg/janus_cli/wrap_test.go

package janus_cli

import (
	"errors"
	"testing"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_err"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_io"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapRecoversPanic(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	run := Wrap(func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		panic("kaboom")
	})

	err := run(&cobra.Command{Use: "boom"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestWrapKeepsExpectedUserErrors(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", t.TempDir())

	base := errors.New("operator declined")
	run := Wrap(func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return janus_err.NewExpectedError(base)
	})

	err := run(&cobra.Command{Use: "gate"}, nil)
	require.Error(t, err)
	assert.True(t, janus_err.IsExpectedUserError(err))
	assert.ErrorIs(t, err, base)
}
