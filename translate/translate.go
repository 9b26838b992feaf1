// Package translate formats user-visible messages for the current locale.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

// DEFAULT_LANGUAGE is used when no locale is known.
const DEFAULT_LANGUAGE = "en-US"

var printer *message.Printer

func init() {
	languages, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	Use(languages...)
}

// Use selects the message language from a list of preferences.
// An empty list selects DEFAULT_LANGUAGE.
func Use(languages ...string) {
	if len(languages) == 0 {
		languages = []string{DEFAULT_LANGUAGE}
	}

	printer = message.NewPrinter(message.MatchLanguage(languages...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
