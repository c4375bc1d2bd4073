// Package main provides the stepagent command: a console agent that answers
// queries by driving a language model through a JSON step protocol and
// running the tools it asks for.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
