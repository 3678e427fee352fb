// Command folio imports plain-text books into a local library and serves
// them for reading from the terminal or over MCP.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/folio/internal/adapters/driving/cli"
)

func main() {
	cli.SetBootstrap(bootstrap)
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
