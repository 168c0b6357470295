package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// UI contains the output streams for the application.
// Used for injecting buffers during testing.
type UI struct {
	Out io.Writer
	Err io.Writer
}

func main() {
	ui := UI{Out: os.Stdout, Err: os.Stderr}
	if err := newApp(ui).Run(os.Args); err != nil {
		fprintErr(ui.Err, err)
		os.Exit(1)
	}
}

func fprintErr(w io.Writer, err error) {
	_, _ = fmt.Fprintf(w, "reviewlex: %v\n", err)
}

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "YAML configuration `FILE`",
	EnvVars: []string{envPrefix + "CONFIG"},
}

func newApp(ui UI) *cli.App {
	return &cli.App{
		Name:      "reviewlex",
		Usage:     "lexicon based analysis of German customer reviews",
		Writer:    ui.Out,
		ErrWriter: ui.Err,
		// Errors are printed by main.
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the full pipeline and write the reports",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:  "mode",
						Usage: "sequential, concurrent or both",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "output `DIR`",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "parallel steps in concurrent mode (0 = number of CPUs)",
						Value: -1,
					},
					&cli.BoolFlag{
						Name:  "no-progress",
						Usage: "do not render the progress bar",
					},
				},
				Action: func(c *cli.Context) error {
					cfg, err := LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					if m := c.String("mode"); m != "" {
						cfg.Run.Mode = m
					}
					if o := c.String("output"); o != "" {
						cfg.Output.Dir = o
					}
					if n := c.Int("workers"); n >= 0 {
						cfg.Run.Workers = n
					}
					if err := cfg.Validate(); err != nil {
						return err
					}
					return runCommand(c.Context, cfg, !c.Bool("no-progress"), ui)
				},
			},
			{
				Name:      "normalize",
				Usage:     "print the normalized form of each argument or stdin line",
				ArgsUsage: "[TEXT...]",
				Action: func(c *cli.Context) error {
					return normalizeCommand(c.Args().Slice(), os.Stdin, ui)
				},
			},
			{
				Name:      "score",
				Usage:     "print score and label of each argument",
				ArgsUsage: "TEXT...",
				Flags:     []cli.Flag{configFlag},
				Action: func(c *cli.Context) error {
					cfg, err := LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					return scoreCommand(cfg, c.Args().Slice(), ui)
				},
			},
			{
				Name:  "version",
				Usage: "print the version",
				Action: func(*cli.Context) error {
					return versionCommand(ui)
				},
			},
		},
	}
}
