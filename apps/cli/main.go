package main

import (
	"github.com/abdul-hamid-achik/unitspec/apps/cli/cmd"

	// Demo suites shipped with the binary.
	_ "github.com/abdul-hamid-achik/unitspec/examples/selfcheck"
)

// Set via -ldflags at build time.
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
