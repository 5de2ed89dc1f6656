// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package process

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
)

// Fatal writes "error: err" to stderr and exits with code 1. Use it in
// main() for errors from run() where the structured logger may not be
// initialized.
func Fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// Repanic logs a recovered panic value with its stack and panics again
// with the same value. Deferred at the top of long-running goroutines,
// it makes an unexpected failure visible in the structured log before
// the runtime terminates the process:
//
//	defer func() {
//	    if recovered := recover(); recovered != nil {
//	        process.Repanic(logger, recovered, "render loop")
//	    }
//	}()
func Repanic(logger *slog.Logger, recovered any, where string) {
	logger.Error("unhandled panic",
		"where", where,
		"panic", fmt.Sprint(recovered),
		"stack", string(debug.Stack()),
	)
	panic(recovered)
}
