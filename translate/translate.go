// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package translate renders the user-visible text of diagnostics, errors and
// listings in the language of the current locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	once    sync.Once
	printer *message.Printer
)

// load selects the printer from the user locales, falling back to en-US.
func load() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("asm8: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// SetLanguage forces the output language, overriding the user locales.
func SetLanguage(tag language.Tag) {
	once.Do(func() {})
	printer = message.NewPrinter(tag)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	once.Do(load)
	return printer.Sprintf(key, args...)
}
