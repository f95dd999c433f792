// Command play runs the expedition game as a local terminal UI, no
// server required.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/tui"
)

func main() {
	cmd := &cli.Command{
		Name:  "play",
		Usage: "play an expedition in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "map",
				Usage: "path to a map file (JSON or YAML); defaults to the built-in reference map",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	config := engine.DefaultMapConfig()

	if path := cmd.String("map"); path != "" {
		loaded, err := engine.LoadMapConfig(path)
		if err != nil {
			return fmt.Errorf("failed to load map %s: %w", path, err)
		}
		config = loaded
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return fmt.Errorf("failed to start expedition: %w", err)
	}

	return tui.Run(eng)
}
