// pkg/janus_cli/wrap.go

package janus_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_err"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/janus_io"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/logger"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap ensures panic recovery, telemetry and logging around a command body.
func Wrap(fn func(rc *janus_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := janus_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !janus_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
