package main

import (
	"context"
	"fmt"
	"os"

	"github.com/acmchapter/recruitment-api/cmd/adminhash/cmds"
)

func main() {
	if err := cmds.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
