// Package amplifier runs chains of Intcode amplifier controllers, each
// primed with a phase setting and passing its signal to the next.
package amplifier

import (
	"errors"
	"iter"
	"log"
	"math"
	"slices"

	"github.com/ezrec/intcode/cpu"
)

const (
	FEEDBACK_LIMIT = 100000 // Maximum number of rounds in a feedback loop.
)

// Chain is a set of amplifiers all running the same controller program.
type Chain struct {
	Verbose bool        // Set to enable verbose logging.
	Program cpu.Program // Amplifier controller software.
	Patches []cpu.Patch // Applied to each amplifier after loading.
}

// amplifiers creates one CPU per phase, with the phase as its first input.
func (chain *Chain) amplifiers(phases []int64) (amps []*cpu.Cpu, err error) {
	if len(phases) == 0 {
		err = ErrNoPhases
		return
	}

	amps = make([]*cpu.Cpu, len(phases))
	for n, phase := range phases {
		amps[n] = cpu.NewCpu(chain.Program)
		err = amps[n].Patch(chain.Patches...)
		if err != nil {
			return
		}
		amps[n].SetInputs(phase)
	}

	return
}

// Series runs each amplifier once, in order. The first receives the input
// signal, each later one the output of the one before it.
// Returns the output of the last amplifier.
func (chain *Chain) Series(phases []int64, signal int64) (output int64, err error) {
	amps, err := chain.amplifiers(phases)
	if err != nil {
		return
	}

	output = signal
	for n, amp := range amps {
		err = amp.PushInput(output)
		if err == nil {
			output, err = amp.Next()
		}
		if errors.Is(err, cpu.ErrHalted) {
			err = ErrNoSignal
		}
		if err != nil {
			err = &ErrStage{Index: n, Err: err}
			return
		}
		if chain.Verbose {
			log.Printf("amplifier: %d: phase %d -> %d", n, phases[n], output)
		}
	}

	return
}

// Feedback runs the amplifiers as a loop, the output of the last feeding
// the input of the first, until the last amplifier halts.
// Returns the final output of the last amplifier.
func (chain *Chain) Feedback(phases []int64, signal int64) (output int64, err error) {
	amps, err := chain.amplifiers(phases)
	if err != nil {
		return
	}

	last := len(amps) - 1
	produced := false
	for round := 0; !amps[last].Halted(); round++ {
		if round >= FEEDBACK_LIMIT {
			err = ErrFeedbackLimit
			return
		}

		for n, amp := range amps {
			if amp.Halted() {
				continue
			}

			err = amp.PushInput(signal)
			if err != nil {
				err = &ErrStage{Index: n, Err: err}
				return
			}

			var value int64
			value, err = amp.Next()
			if errors.Is(err, cpu.ErrHalted) {
				err = nil
				continue
			}
			if err != nil {
				err = &ErrStage{Index: n, Err: err}
				return
			}

			signal = value
			if n == last {
				output = value
				produced = true
			}
		}

		if chain.Verbose {
			log.Printf("amplifier: round %d -> %d", round, signal)
		}
	}

	if !produced {
		err = &ErrStage{Index: last, Err: ErrNoSignal}
	}

	return
}

// Best tries every ordering of the phases, with an initial signal of 0,
// and returns the highest output and the ordering that produced it.
func (chain *Chain) Best(phases []int64, feedback bool) (signal int64, order []int64, err error) {
	if len(phases) == 0 {
		err = ErrNoPhases
		return
	}

	run := chain.Series
	if feedback {
		run = chain.Feedback
	}

	signal = math.MinInt64
	for perm := range Permutations(phases) {
		var output int64
		output, err = run(perm, 0)
		if err != nil {
			return
		}
		if output > signal {
			signal = output
			order = perm
		}
	}

	if chain.Verbose {
		log.Printf("amplifier: best %v -> %d", order, signal)
	}

	return
}

// Permutations returns an iterator over every ordering of the values.
// Each yielded slice is a fresh copy.
func Permutations(values []int64) iter.Seq[[]int64] {
	return func(yield func([]int64) bool) {
		perm := slices.Clone(values)
		count := make([]int, len(perm))

		if !yield(slices.Clone(perm)) {
			return
		}

		for i := 1; i < len(perm); {
			if count[i] < i {
				if i%2 == 0 {
					perm[0], perm[i] = perm[i], perm[0]
				} else {
					perm[count[i]], perm[i] = perm[i], perm[count[i]]
				}
				if !yield(slices.Clone(perm)) {
					return
				}
				count[i]++
				i = 1
			} else {
				count[i] = 0
				i++
			}
		}
	}
}
