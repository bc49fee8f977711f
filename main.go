package main

import (
	"fmt"
	"os"

	"fjacquet/camt-import/cmd/importer"
	"fjacquet/camt-import/cmd/root"
	"fjacquet/camt-import/cmd/serve"
)

func init() {
	root.Init()
	root.Cmd.AddCommand(importer.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
