package config

import (
	"errors"
	"strings"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrConfigParse   = errors.New(f("configuration parse error"))
	ErrNoProgramPath = errors.New(f("no program path configured"))
)

// ErrUnknownKey lists configuration keys that do not match any setting.
type ErrUnknownKey []string

func (err ErrUnknownKey) Error() string {
	return f("unknown configuration keys: %v", strings.Join(err, ", "))
}
