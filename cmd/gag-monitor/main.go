// Package main is the entry point for gag-monitor.
package main

import (
	"os"

	"github.com/Harlandx/Grow-a-Garden-Notification-System/cmd/gag-monitor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
