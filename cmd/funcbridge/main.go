package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ppiankov/funcbridge/internal/cli"
	"github.com/ppiankov/funcbridge/pkg/executor"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps executor error kinds to distinct exit codes so callers
// can tell a malformed signature from a missing input without parsing
// stderr.
func exitCode(err error) int {
	var (
		cfgErr    *executor.ConfigError
		lookupErr *executor.LookupError
		typeErr   *executor.TypeMismatchError
		arityErr  *executor.ArityMismatchError
	)
	switch {
	case errors.As(err, &cfgErr):
		return 2
	case errors.As(err, &lookupErr):
		return 3
	case errors.As(err, &typeErr), errors.As(err, &arityErr):
		return 4
	}
	return 1
}
