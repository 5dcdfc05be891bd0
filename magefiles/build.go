//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Checks the module and builds a static anima-obj binary into bin/.
func (Build) Binary() error {
	if err := goCheck(); err != nil {
		return err
	}
	return executeCmd("go", withArgs("build", "-o", "bin/anima-obj", "."), withEnv("CGO_ENABLED", "0"), withStream())
}
