package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-obj/engine"
	"github.com/spaghettifunk/anima-obj/engine/assets"
	"github.com/spaghettifunk/anima-obj/engine/assets/loaders"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
	"github.com/urfave/cli/v2"
)

// WatchModels loads the given models and reloads them whenever one of their
// files changes, until interrupted.
func WatchModels(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %s", err.Error()), 1)
	}
	cfg.Assets.Watch = true

	var am *assets.AssetManager
	onReload := func(path string, err error) {
		if err != nil {
			fmt.Fprintf(ctx.App.ErrWriter, "%s: reload failed, previous assets kept: %s\n", path, err.Error())
			return
		}
		if h, ok := am.Registry().Labeled(path, loaders.LabelObj); ok {
			printSummary(ctx.App.Writer, am.Registry(), h)
		}
	}

	e, err := engine.New(cfg, assets.WithReloadCallback(onReload))
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %s", err.Error()), 1)
	}
	am = e.AssetManager()

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		return cli.Exit(fmt.Sprintf("error: %s", err.Error()), 1)
	}

	models := ctx.Args().Slice()
	if len(models) == 0 {
		models = am.Assets(metadata.ResourceTypeModel)
	}
	for _, model := range models {
		h, err := am.LoadAsset(ctx.Context, model)
		if err != nil {
			fmt.Fprintf(ctx.App.ErrWriter, "%s: %s\n", model, err.Error())
			continue
		}
		printSummary(ctx.App.Writer, am.Registry(), h)
	}

	// capture sigterm and other system calls here
	runCtx, stop := signal.NotifyContext(ctx.Context, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	fmt.Fprintf(ctx.App.Writer, "watching '%s', press ctrl+c to stop\n", cfg.Assets.BasePath)
	return e.Run(runCtx)
}
