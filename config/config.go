// Package config handles the intcode.toml configuration file.
package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/network"
)

// FILENAME is the default configuration file name.
const FILENAME = "intcode.toml"

// File is the contents of a configuration file.
type File struct {
	Cpu     Cpu            `toml:"cpu"`
	Network network.Config `toml:"network"`
	Program Program        `toml:"program"`

	// Dir is the directory containing the file (set at load time).
	Dir string `toml:"-"`
}

// Cpu is the [cpu] table.
type Cpu struct {
	Verbose bool   `toml:"verbose"` // Trace every instruction.
	Ascii   bool   `toml:"ascii"`   // Console input and output as ASCII.
	Prompt  string `toml:"prompt"`  // Interactive input prompt.
}

// Program is the [program] table.
type Program struct {
	Path   string  `toml:"path"`   // Program file, relative to the configuration file.
	Inputs []int64 `toml:"inputs"` // Values queued before any console input.
	Patch  []Patch `toml:"patch"`  // Memory patches applied before running.
}

// Patch is a single [[program.patch]] entry.
type Patch struct {
	Address int64 `toml:"address"`
	Value   int64 `toml:"value"`
}

// Default returns the default configuration.
func Default() (cfg *File) {
	cfg = &File{
		Cpu: Cpu{
			Prompt: "Enter a value: ",
		},
		Network: network.DefaultConfig(),
	}

	return
}

// Decode reads a configuration over the defaults.
// Keys that match no setting are an error.
func Decode(input io.Reader) (cfg *File, err error) {
	cfg = Default()

	md, err := toml.NewDecoder(input).Decode(cfg)
	if err != nil {
		cfg = nil
		err = errors.Join(ErrConfigParse, err)
		return
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make(ErrUnknownKey, len(undecoded))
		for n, key := range undecoded {
			keys[n] = key.String()
		}
		cfg = nil
		err = errors.Join(ErrConfigParse, keys)
		return
	}

	err = cfg.Network.Validate()
	if err != nil {
		cfg = nil
		err = errors.Join(ErrConfigParse, err)
		return
	}

	return
}

// Load reads a configuration file.
func Load(path string) (cfg *File, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	cfg, err = Decode(file)
	if err != nil {
		return
	}

	cfg.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		cfg = nil
	}

	return
}

// ProgramPath returns the program file path, resolved against the
// directory of the configuration file.
func (cfg *File) ProgramPath() string {
	if cfg.Program.Path == "" || filepath.IsAbs(cfg.Program.Path) || cfg.Dir == "" {
		return cfg.Program.Path
	}

	return filepath.Join(cfg.Dir, cfg.Program.Path)
}

// LoadProgram reads the configured program file.
func (cfg *File) LoadProgram() (prog cpu.Program, err error) {
	path := cfg.ProgramPath()
	if path == "" {
		err = ErrNoProgramPath
		return
	}

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	return cpu.ReadProgram(file)
}

// Patches returns the configured patches, to be applied to each CPU once
// the program is loaded.
func (cfg *File) Patches() (patches []cpu.Patch, err error) {
	patches = make([]cpu.Patch, 0, len(cfg.Program.Patch))
	for _, patch := range cfg.Program.Patch {
		if patch.Address < 0 {
			return nil, cpu.ErrAddressNegative
		}
		patches = append(patches, cpu.Patch{Address: patch.Address, Value: patch.Value})
	}

	return
}
