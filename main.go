// Package main is the entry point for the modpatch CLI.
package main

import "modpatch.dev/pkg/modpatch/cmd"

func main() {
	cmd.Execute()
}
