// main.go

package main

import (
	"github.com/CodeMonkeyCybersecurity/janus/cmd"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/janus/pkg/telemetry"
)

func main() {
	logger.InitializeWithFallback()
	log := logger.L()
	if log == nil {
		panic("logger not initialized")
	}

	if err := telemetry.Init("janus"); err != nil {
		log.Warn("Telemetry disabled: " + err.Error())
	}

	cmd.Execute()
}
