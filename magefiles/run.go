//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the tangram demo with config.toml. Stop it with Ctrl+C.
func (Run) Demo() error {
	fmt.Println("Run demo...")
	if _, err := executeCmd("go", withArgs("run", ".", "config.toml"), withStream()); err != nil {
		return err
	}
	return nil
}
