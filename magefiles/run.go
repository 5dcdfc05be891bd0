//go:build mage

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Loads the models listed in $MODELS (space separated) and prints their summary.
func (Run) Load() error {
	mg.Deps(Build.Binary)

	models := strings.Fields(os.Getenv("MODELS"))
	if len(models) == 0 {
		return fmt.Errorf("set MODELS to the .obj files to load")
	}
	args := append([]string{"load"}, models...)
	return executeCmd("bin/anima-obj", withArgs(args...), withStream())
}

// Watches the asset directory and reloads models as they change.
func (Run) Watch() error {
	mg.Deps(Build.Binary)

	fmt.Println("Watching assets...")
	return executeCmd("bin/anima-obj", withArgs("watch"), withStream())
}
