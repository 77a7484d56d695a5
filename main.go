package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/260825-go-pkg-macrox/internal/command"
	"github.com/lwmacct/260825-go-pkg-macrox/internal/command/expand"
	"github.com/lwmacct/260825-go-pkg-macrox/internal/command/resolve"
)

func main() {
	app := &cli.Command{
		Name:    command.AppName,
		Usage:   "配置宏插值工具",
		Version: command.Version,
		Commands: []*cli.Command{
			resolve.Command,
			expand.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
