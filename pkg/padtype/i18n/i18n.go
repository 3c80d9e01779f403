// Package i18n provides localized captions for the keyboard's functional
// keys (abc, symbol-page markers and friends). Languages beyond the embedded
// English defaults are added by loading extra message files.
package i18n

import (
	_ "embed"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/padtype/padtype/pkg/padtype/layout"
)

//go:embed messages/en.toml
var enMessages []byte

var localizer *goi18n.Localizer
var bundle *goi18n.Bundle

func init() {
	bundle = goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	// The embedded defaults always parse; they are covered by tests.
	if _, err := bundle.ParseMessageFileBytes(enMessages, "en.toml"); err != nil {
		panic(err)
	}
	localizer = goi18n.NewLocalizer(bundle, language.English.String())
}

// LoadMessageFile adds a translation file (TOML) to the bundle.
func LoadMessageFile(path string) error {
	_, err := bundle.LoadMessageFile(path)
	return err
}

// SetLanguage switches the preferred language, falling back to English for
// missing messages.
func SetLanguage(tag language.Tag) {
	localizer = goi18n.NewLocalizer(bundle, tag.String(), language.English.String())
}

// SetWithCode switches the preferred language from a BCP 47 code.
func SetWithCode(code string) error {
	tag, err := language.Parse(code)
	if err != nil {
		return err
	}
	SetLanguage(tag)
	return nil
}

// Captions returns the functional-key captions for the active language.
// Unresolvable messages fall back to the built-in defaults.
func Captions() layout.Captions {
	defaults := layout.DefaultCaptions()
	return layout.Captions{
		Backspace:  lookup("osk_caption_backspace", defaults.Backspace),
		Shift:      lookup("osk_caption_shift", defaults.Shift),
		Enter:      lookup("osk_caption_enter", defaults.Enter),
		Abc:        lookup("osk_caption_abc", defaults.Abc),
		Symbols:    lookup("osk_caption_symbols", defaults.Symbols),
		FirstPage:  lookup("osk_caption_first_page", defaults.FirstPage),
		SecondPage: lookup("osk_caption_second_page", defaults.SecondPage),
	}
}

func lookup(id, fallback string) string {
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
