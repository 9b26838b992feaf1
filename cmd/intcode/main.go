// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/config"
	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/translate"
)

// options shared by every sub-command.
type options struct {
	config  string
	lang    string
	verbose bool
}

// load reads the configuration, from the --config file if given, else
// from intcode.toml in the working directory if present.
func (opts *options) load() (cfg *config.File, err error) {
	path := opts.config
	if len(path) == 0 {
		_, err = os.Stat(config.FILENAME)
		if errors.Is(err, os.ErrNotExist) {
			cfg = config.Default()
			err = nil
			return
		}
		path = config.FILENAME
	}

	cfg, err = config.Load(path)
	if err != nil {
		return
	}

	if opts.verbose {
		cfg.Cpu.Verbose = true
	}

	return
}

// program reads the program named on the command line, or the configured
// one, and the configured patches.
func (opts *options) program(cfg *config.File, args []string) (prog cpu.Program, patches []cpu.Patch, err error) {
	if len(args) > 0 {
		var inf *os.File
		inf, err = os.Open(args[0])
		if err != nil {
			return
		}
		defer inf.Close()
		prog, err = cpu.ReadProgram(inf)
	} else {
		prog, err = cfg.LoadProgram()
	}
	if err != nil {
		return
	}

	patches, err = cfg.Patches()
	return
}

func newRootCommand() (root *cobra.Command) {
	opts := &options{}

	root = &cobra.Command{
		Use:           "intcode",
		Short:         "Intcode virtual machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if len(opts.lang) != 0 {
				translate.Use(opts.lang)
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.config, "config", "", "configuration file (default "+config.FILENAME+")")
	root.PersistentFlags().StringVar(&opts.lang, "lang", "", "message language (default from the environment)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose mode")

	root.AddCommand(
		newRunCommand(opts),
		newAmpCommand(opts),
		newNetCommand(opts),
		newScriptCommand(opts),
	)

	return
}

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}
