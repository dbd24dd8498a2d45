package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Translates user-facing strings. Messages without a translation are returned unchanged.
type Translator interface {
	T(msgid string) string
	Tag() language.Tag
}

// A translator backed by a message catalog.
type catalogTranslator struct {
	tag     language.Tag
	printer *message.Printer
}

func (t *catalogTranslator) T(msgid string) string {
	return t.printer.Sprintf(msgid)
}

func (t *catalogTranslator) Tag() language.Tag {
	return t.tag
}

// The catalog of all translations, built once.
var messages = buildCatalog()

// The locales for which translations are available, English being the first one (and the fallback).
var supported = append([]language.Tag{language.English}, translatedLanguages()...)

var matcher = language.NewMatcher(supported)

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	for tag, translations := range translations {
		for msgid, msg := range translations {
			// Only fails for invalid messages, which the tests guard against.
			_ = b.SetString(tag, msgid, msg)
		}
	}

	return b
}

func translatedLanguages() []language.Tag {
	tags := make([]language.Tag, 0, len(translations))
	for tag := range translations {
		tags = append(tags, tag)
	}
	return tags
}

// Creates a translator for the given locale, e.g. `fr` or `fr-CA`. Unsupported locales fall back to English.
func New(locale string) Translator {
	_, index := language.MatchStrings(matcher, locale)
	tag := supported[index]

	return &catalogTranslator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(messages)),
	}
}

// The translator returning all messages in English.
var English = New("en")
