package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/network"
)

func newNetCommand(opts *options) (cmd *cobra.Command) {
	var concurrent bool
	var rounds int

	cmd = &cobra.Command{
		Use:   "net [PROGRAM]",
		Short: "Run a program on every interface of a network",
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

			net, err := network.NewNetwork(prog, cfg.Network, patches...)
			if err != nil {
				return
			}
			net.Verbose = cfg.Cpu.Verbose
			net.Nat.Verbose = cfg.Cpu.Verbose

			until := func(nat *network.Nat) bool {
				_, ok := nat.RepeatedY()
				return ok
			}

			if concurrent {
				ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
				defer stop()
				err = net.Run(ctx, until)
			} else {
				_, err = net.Loop(until, rounds)
			}
			if err != nil {
				return
			}

			first, _ := net.Nat.FirstY()
			repeated, _ := net.Nat.RepeatedY()
			fmt.Fprintf(cmd.OutOrStdout(), "first: %d\nrepeated: %d\n", first, repeated)
			return
		},
	}

	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "run each interface in its own goroutine")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "maximum scheduling rounds, 0 for no limit")

	return
}
