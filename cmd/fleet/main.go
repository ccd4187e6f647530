// Command fleet manages a local graph of galaxies, ships, cargo, crew
// members and contracts.
package main

import (
	"os"

	"github.com/mesh-intelligence/freighter/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
