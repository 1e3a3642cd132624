// Package core holds shared runtime primitives with no domain knowledge.
package core

import (
	"fmt"
	"os"
	"runtime/debug"
)

// HandleCrash is the unified panic handler: it prints the failure and the
// stack trace to stderr and exits. Engine-internal failures never reach
// it; this is the last stop for bugs in loop plumbing itself.
func HandleCrash(r any) {
	if r == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "\nCRASH DETECTED: %v\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword for loop goroutines so a crash
// surfaces with its stack instead of killing the process silently.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
