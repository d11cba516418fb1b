// pkg/execute/helpers.go

package execute

import (
	"os/exec"
	"strings"
	"time"
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func defaultTimeout(t time.Duration) time.Duration {
	if t > 0 {
		return t
	}
	return 3 * time.Minute
}

func buildCommandString(command string, args ...string) string {
	return command + " " + strings.Join(args, " ")
}

// CommandExists reports whether a command is resolvable on PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
