package cmd

import (
	"fmt"

	"github.com/spaghettifunk/anima-obj/engine"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/urfave/cli/v2"
)

// LoadModels loads every OBJ given as argument and prints what was registered.
func LoadModels(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.Exit("at least one .obj path is required", 1)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %s", err.Error()), 1)
	}
	cfg.Assets.Watch = false

	e, err := engine.New(cfg)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %s", err.Error()), 1)
	}
	defer e.Shutdown()

	if err := e.Initialize(); err != nil {
		return cli.Exit(fmt.Sprintf("error: %s", err.Error()), 1)
	}

	am := e.AssetManager()
	failed := 0
	for idx := 0; idx < ctx.NArg(); idx++ {
		model := ctx.Args().Get(idx)
		h, err := am.LoadAsset(ctx.Context, model)
		if err != nil {
			fmt.Fprintf(ctx.App.ErrWriter, "%s: %s\n", model, err.Error())
			failed++
			continue
		}
		printSummary(ctx.App.Writer, am.Registry(), h)
	}

	loads, failures := core.MetricsLoads()
	fmt.Fprintf(ctx.App.Writer, "%d loads, %d failed, %.2fms on average\n", loads, failures, core.MetricsLoadTime())

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d models failed to load", failed, ctx.NArg()), 1)
	}
	return nil
}
