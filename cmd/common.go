package cmd

import (
	"fmt"
	"io"

	"github.com/spaghettifunk/anima-obj/engine/assets"
	"github.com/spaghettifunk/anima-obj/engine/core"
	"github.com/spaghettifunk/anima-obj/engine/renderer/metadata"
	"github.com/urfave/cli/v2"
)

// Flags shared by every command.
var Flags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the TOML configuration",
		Value:   "anima.toml",
		EnvVars: []string{"ANIMA_CONFIG"},
	},
	&cli.StringFlag{
		Name:  "assets",
		Usage: "asset directory, overrides assets.base_path",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn, error or fatal; overrides log.level",
	},
}

// loadConfig reads the configuration file and applies the command line overrides.
func loadConfig(ctx *cli.Context) (*core.Config, error) {
	cfg, err := core.LoadConfig(ctx.String("config"))
	if err != nil {
		return nil, err
	}
	if ctx.IsSet("assets") {
		cfg.Assets.BasePath = ctx.String("assets")
	}
	if ctx.IsSet("log-level") {
		cfg.Log.Level = ctx.String("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// printSummary writes the meshes, materials and textures registered for the Obj behind h.
func printSummary(w io.Writer, reg *assets.Registry, h metadata.Handle) {
	obj, ok := assets.Get[*metadata.Obj](reg, h)
	if !ok {
		fmt.Fprintf(w, "%s: no Obj registered\n", h.Path)
		return
	}

	textures := 0
	for _, label := range reg.Labels(h.Path) {
		th, _ := reg.Labeled(h.Path, label)
		if _, ok := assets.Get[*metadata.Texture](reg, th); ok {
			textures++
		}
	}

	fmt.Fprintf(w, "%s: %d meshes, %d materials, %d textures\n", h.Path, len(obj.Meshes), len(obj.Materials), textures)
	for _, ph := range obj.Meshes {
		pair, ok := assets.Get[*metadata.ObjMesh](reg, ph)
		if !ok {
			continue
		}
		mesh, ok := assets.Get[*metadata.Mesh](reg, pair.Mesh)
		if !ok {
			continue
		}
		material := "-"
		if pair.Material != nil {
			material = pair.Material.Label
		}
		fmt.Fprintf(w, "  %-10s %-24s vertices=%d triangles=%d material=%s\n",
			ph.Label, mesh.Name, mesh.VertexCount(), len(mesh.Indices)/3, material)
	}
}
