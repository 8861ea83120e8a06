package main

import (
	"github.com/richinsley/gomandelbulb/log"
	"github.com/urfave/cli"
)

// setupLogging applies the configured level, then lets -v/-vv raise it.
func setupLogging(ctx *cli.Context, level string) error {
	if err := log.SetLevelName(level); err != nil {
		return err
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}
