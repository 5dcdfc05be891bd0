/*
anima-obj loads Wavefront OBJ models, their material libraries and textures
into labeled assets, and can keep them up to date while the files change.
*/
package main

import (
	"os"

	"github.com/spaghettifunk/anima-obj/cmd"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "anima-obj",
		Usage: "load and watch Wavefront OBJ assets",
		Flags: cmd.Flags,
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "load models and print a summary of their assets",
				ArgsUsage: "model.obj [model.obj...]",
				Action:    cmd.LoadModels,
			},
			{
				Name:      "watch",
				Usage:     "load models and reload them when their files change",
				ArgsUsage: "[model.obj...]",
				Action:    cmd.WatchModels,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		core.LogFatal(err.Error())
	}
}
