//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles the demo binary into bin/tangram.
func (Build) Demo() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/tangram", "."), withStream())
	return err
}

// Runs every package test with the race detector.
func Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs go mod tidy.
func Tidy() error {
	return goTidy()
}
