// Command nextcall-js checks that JavaScript chain handlers (restify or
// express style middleware) call their continuation.
package main

import (
	"context"
	"os"
	"os/signal"
)

// Exit codes.
const (
	exitOK       = 0
	exitFindings = 1
	exitError    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
