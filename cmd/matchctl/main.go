// matchctl scores recipe files against a set of ingredients from the shell,
// using the same engine and matching tables as the API.
package main

import (
	"os"

	"github.com/pageza/pantrymatch/backend/cmd/matchctl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
