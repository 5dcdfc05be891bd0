//go:build mage

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type cmdOptions struct {
	args   []string
	dir    string
	env    map[string]string
	stream bool
}

type cmdOption func(*cmdOptions)

func withArgs(args ...string) cmdOption {
	return func(o *cmdOptions) {
		o.args = args
	}
}

// withDir runs the command from dir, relative to the module root.
func withDir(dir string) cmdOption {
	return func(o *cmdOptions) {
		o.dir = dir
	}
}

func withEnv(key, value string) cmdOption {
	return func(o *cmdOptions) {
		o.env[key] = value
	}
}

func withStream() cmdOption {
	return func(o *cmdOptions) {
		o.stream = true
	}
}

// executeCmd runs command and only prints its output on failure, unless
// streaming or mage runs verbose.
func executeCmd(command string, options ...cmdOption) error {
	opts := &cmdOptions{env: make(map[string]string)}
	for _, o := range options {
		o(opts)
	}
	fmt.Printf("Executing: %s %s\n", command, strings.Join(opts.args, " "))

	var out bytes.Buffer
	var stdout, stderr io.Writer = &out, &out
	if mg.Verbose() || opts.stream {
		stdout, stderr = os.Stdout, os.Stderr
	}

	var err error
	if opts.dir == "" {
		_, err = sh.Exec(opts.env, stdout, stderr, command, opts.args...)
	} else {
		cmd := exec.Command(command, opts.args...)
		cmd.Dir = opts.dir
		cmd.Env = os.Environ()
		for k, v := range opts.env {
			cmd.Env = append(cmd.Env, k+"="+v)
		}
		cmd.Stdout, cmd.Stderr = stdout, stderr
		err = cmd.Run()
	}
	if err != nil {
		if out.Len() > 0 {
			fmt.Println("... failed command output:")
			fmt.Println(out.String())
		}
		return fmt.Errorf("error executing %s: %w", command, err)
	}
	return nil
}

// goCheck tidies the module and fails on anything go build or go vet reports.
func goCheck() error {
	steps := [][]string{
		{"mod", "tidy"},
		{"build", "./..."},
		{"vet", "./..."},
	}
	for _, args := range steps {
		if err := executeCmd("go", withArgs(args...)); err != nil {
			return fmt.Errorf("go %s: %w", args[0], err)
		}
	}
	return nil
}
