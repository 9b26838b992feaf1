package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/script"
)

func newScriptCommand(opts *options) (cmd *cobra.Command) {
	var program string

	cmd = &cobra.Command{
		Use:   "script FILE.star",
		Short: "Run a Starlark driver script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := opts.load()
			if err != nil {
				return
			}

			var prog cpu.Program
			var patches []cpu.Patch
			if len(program) != 0 || len(cfg.ProgramPath()) != 0 {
				var names []string
				if len(program) != 0 {
					names = []string{program}
				}
				prog, patches, err = opts.program(cfg, names)
				if err != nil {
					return
				}
			}

			src, err := os.ReadFile(args[0])
			if err != nil {
				return
			}

			host := &script.Host{
				Verbose: cfg.Cpu.Verbose,
				Program: prog,
				Patches: patches,
				Output:  cmd.OutOrStdout(),
			}

			_, err = host.Exec(args[0], src)
			return
		},
	}

	cmd.Flags().StringVarP(&program, "program", "p", "", "program visible to the script")

	return
}
