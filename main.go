// Entrypoint that delegates to the Cobra root command in cmd/root.go.

package main

import (
	"github.com/relaxer-go/relaxer/cmd"
)

func main() {
	cmd.Execute()
}
