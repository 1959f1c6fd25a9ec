// Command nyxc is the frontend's entry point: it wires the CLI flags
// spec.md §6.1 defines onto the driver's worklist loop and the three
// dump formats.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/driver"
	"github.com/nyxlang/nyxc/internal/dump"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg := config.Default()
	var configFile string
	var format string

	root := &cobra.Command{
		Use:          "nyxc",
		Short:        "nyxc parses source files into an AST and entity table",
		Version:      driver.Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFrontend(cmd, cfg, configFile, format)
		},
	}

	flags := root.Flags()
	flags.StringSliceVarP(&cfg.Input, "input", "i", nil, "one or more core-unit source paths")
	flags.StringSliceVarP(&cfg.Output, "output", "o", nil, "one or more output paths, matching --input in count")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose diagnostics")
	flags.BoolVar(&cfg.DumpAST, "dump-ast", false, "serialize the AST forest to stdout after parsing")
	flags.BoolVar(&cfg.DumpTokens, "dump-tokens", false, "lex only, print each token, and exit")
	flags.BoolVar(&cfg.DumpEntities, "dump-entities", false, "serialize the entity table to stdout after parsing")
	flags.BoolVar(&cfg.DumpIR, "dump-ir", false, "reserved for the code-gen layer")
	flags.BoolVar(&cfg.DumpContext, "dump-context", false, "print the runtime configuration")
	flags.BoolVar(&cfg.Colours, "colours", true, "ANSI color output")
	flags.StringVar(&configFile, "config", "", "path to a .nyxc.json/.nyxc.yaml overlay")

	flags.StringVar(&format, "format", "text", "dump format for --dump-ast/--dump-entities: text or cbor")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return exitCode
}

// exitCode lets RunE communicate a specific non-zero code without
// cobra mapping every error to 1.
var exitCode int

func runFrontend(cmd *cobra.Command, cfg config.Config, configFile, format string) error {
	if configFile != "" {
		fileCfg, err := config.LoadFile(configFile)
		if err != nil {
			exitCode = 1
			return err
		}
		cfg = cfg.Merge(fileCfg)
	}

	if cfg.DumpIR {
		exitCode = 1
		return fmt.Errorf("nyxc: --dump-ir is not implemented — code generation is out of scope for this frontend")
	}

	colourOut := isatty.IsTerminal(os.Stdout.Fd()) && cfg.Colours
	stdout := colorable.NewColorableStdout()

	if cfg.DumpTokens {
		if len(cfg.Input) == 0 {
			exitCode = 1
			return fmt.Errorf("--dump-tokens requires --input")
		}
		w := &dump.Writer{W: stdout, Colour: colourOut}
		for _, path := range cfg.Input {
			src, err := os.ReadFile(path)
			if err != nil {
				exitCode = 1
				return err
			}
			w.Tokens(src)
		}
		return nil
	}

	if cfg.DumpContext {
		dump.Context(stdout, cfg, driver.Version)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		exitCode = 1
		return err
	}

	drv := driver.New()
	drv.Verbose = cfg.Verbose
	drv.Colours = cfg.Colours
	drv.Errors.Colorize = colourOut
	drv.SetOutputs(cfg.Output)

	for _, path := range cfg.Input {
		drv.AddCoreUnit(path)
	}
	if err := drv.Validate(); err != nil {
		exitCode = 1
		return err
	}

	ok := drv.Run()
	drv.Errors.Emit(os.Stderr, drv.FileOrder)

	w := &dump.Writer{W: stdout, Colour: colourOut}
	if cfg.DumpAST {
		if format == "cbor" {
			for _, fileID := range drv.FileOrder {
				for _, decl := range drv.TopLevel[fileID] {
					data, err := dump.EncodeAST(decl)
					if err != nil {
						exitCode = 1
						return err
					}
					os.Stdout.Write(data)
				}
			}
		} else {
			for _, fileID := range drv.FileOrder {
				for _, decl := range drv.TopLevel[fileID] {
					w.AST(decl)
				}
			}
		}
	}
	if cfg.DumpEntities {
		if format == "cbor" {
			data, err := dump.EncodeEntities(drv.Entities)
			if err != nil {
				exitCode = 1
				return err
			}
			os.Stdout.Write(data)
		} else {
			w.Entities(drv.Entities)
		}
	}

	if !ok || drv.Errors.ErrorCount() > 0 {
		exitCode = 1
		return nil
	}
	return nil
}
