//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Test runs the unit tests of every package.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet over the module.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Lint runs vet and then the tests.
func Lint() {
	mg.SerialDeps(Vet, Test)
}

// Example runs one of the examples by directory name, e.g. "mage example tweens".
func Example(name string) error {
	fmt.Printf("Run %s example...\n", name)
	return sh.RunV("go", "run", "./examples/"+name)
}

// Tidy runs go mod tidy.
func Tidy() error {
	return sh.Run("go", "mod", "tidy")
}
