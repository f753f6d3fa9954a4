/*
Tangram plays the animated tangram scene described in the config file on
the headless renderer.

	tangram [config.toml]
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/tangram/engine"
	"github.com/spaghettifunk/tangram/engine/core"
	"github.com/spaghettifunk/tangram/engine/renderer/headless"
	"github.com/spaghettifunk/tangram/testbed"
)

const defaultConfigPath = "config.toml"

func main() {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	config, err := engine.LoadApplicationConfig(configPath)
	if err != nil {
		core.LogFatal("failed to load config: %s", err)
	}

	tg := testbed.NewTangramGame()

	e, err := engine.New(tg.Game, config, headless.New())
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal context to capture system calls
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	// run engine
	runErr := e.Run(ctx)
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
