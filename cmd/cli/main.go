package main

import (
	"fmt"
	"os"

	"github.com/limaJavier/selfstudy/internal/cli"
	"github.com/limaJavier/selfstudy/pkg/model"
)

func main() {
	err := cli.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "selfstudy: %v\n", err)
	}
	os.Exit(model.ExitCode(err))
}
