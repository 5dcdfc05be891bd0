//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Compiles and vets every package, test files included.
func (Test) Compile() error {
	if err := goCheck(); err != nil {
		return err
	}
	return executeCmd("go", withArgs("test", "-count=1", "-run", "^$", "./..."))
}

// Runs every test with the race detector.
func (Test) All() error {
	mg.Deps(Test.Compile)
	return executeCmd("go", withArgs("test", "-race", "-count=1", "./..."), withStream())
}

// Runs the loader tests only, verbosely.
func (Test) Loaders() error {
	mg.Deps(Test.Compile)
	return executeCmd("go", withArgs("test", "-race", "-v", "./..."), withDir("engine/assets"), withStream())
}
