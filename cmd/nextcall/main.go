// Command nextcall is a linter that checks chain handlers call their
// continuation.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/mpyw/nextcall"
)

func main() {
	singlechecker.Main(nextcall.Analyzer)
}
