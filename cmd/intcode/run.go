package main

import (
	"os"

	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ezrec/intcode/emulator"
)

// terminal returns the input as a file, if it is an interactive terminal.
func terminal(input any) (file *os.File, ok bool) {
	file, ok = input.(*os.File)
	if !ok {
		return
	}

	ok = isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	return
}

func newRunCommand(opts *options) (cmd *cobra.Command) {
	var inputs []int64
	var ascii bool

	cmd = &cobra.Command{
		Use:   "run [PROGRAM]",
		Short: "Run a program on the console",
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

			emu := emulator.NewEmulator(prog)
			emu.Patches = patches
			emu.Verbose = cfg.Cpu.Verbose
			emu.Ascii = ascii || cfg.Cpu.Ascii
			emu.Inputs = append(emu.Inputs, cfg.Program.Inputs...)
			emu.Inputs = append(emu.Inputs, inputs...)

			output := cmd.OutOrStdout()
			emu.Tape.Output = output
			emu.Text.Output = output

			if file, ok := terminal(cmd.InOrStdin()); ok {
				prompt := cfg.Cpu.Prompt
				if emu.Ascii {
					prompt = ""
				}
				var rl *readline.Instance
				rl, err = readline.NewEx(&readline.Config{
					Prompt: prompt,
					Stdin:  file,
					Stdout: output,
				})
				if err != nil {
					return
				}
				defer rl.Close()
				emu.Tape.Lines = rl
				emu.Text.Lines = rl
			} else {
				emu.Tape.Input = cmd.InOrStdin()
				emu.Text.Input = cmd.InOrStdin()
			}

			err = emu.Reset()
			if err != nil {
				return
			}

			return emu.RunToHalt()
		},
	}

	cmd.Flags().Int64SliceVarP(&inputs, "input", "i", nil, "values received before console input")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "console input and output as ASCII")

	return
}
