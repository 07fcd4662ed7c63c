// Command gw2yaml generates an Archipelago player options template from a
// Guild Wars 2 account.
package main

import (
	"os"

	"github.com/Feldar99/gw2-ap-yaml-generator/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
