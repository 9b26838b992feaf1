package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/amplifier"
)

func newAmpCommand(opts *options) (cmd *cobra.Command) {
	var feedback bool
	var phases []int64

	cmd = &cobra.Command{
		Use:   "amp [PROGRAM]",
		Short: "Find the best phase settings of an amplifier chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := opts.load()
			if err != nil {
				return
			}

			prog, patches, err := opts.program(cfg, args)
			if err != nil {
				return
			}

			if len(phases) == 0 {
				phases = []int64{0, 1, 2, 3, 4}
				if feedback {
					phases = []int64{5, 6, 7, 8, 9}
				}
			}

			chain := &amplifier.Chain{
				Verbose: cfg.Cpu.Verbose,
				Program: prog,
				Patches: patches,
			}

			signal, order, err := chain.Best(phases, feedback)
			if err != nil {
				return
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d %v\n", signal, order)
			return
		},
	}

	cmd.Flags().BoolVar(&feedback, "feedback", false, "run the amplifiers in a feedback loop")
	cmd.Flags().Int64SliceVar(&phases, "phases", nil, "phase settings to permute")

	return
}
