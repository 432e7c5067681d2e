// CLI entry point for ProcureLens.
package main

import (
	"os"

	"github.com/procurelens/ProcureLens/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
