package builtin

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/en.toml
var enMessages []byte

var bundle *i18n.Bundle

func init() {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	if _, err := bundle.ParseMessageFileBytes(enMessages, "locales/en.toml"); err != nil {
		panic(fmt.Sprintf("builtin: malformed locale bundle: %v", err))
	}
}

var localizer = i18n.NewLocalizer(bundle, language.English.String())

// ScriptError is a recoverable error raised by a built-in handler,
// matching spec.md §7's "Script-handler" error kind: surfaced to the
// caller, playback continues. It carries a localized, human-readable
// message rendered at construction time.
type ScriptError struct {
	msg string
}

func (e *ScriptError) Error() string { return e.msg }

func localize(messageID string, data map[string]any) string {
	msg, err := localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		// Fall back to the raw message ID rather than failing a handler
		// call over a missing translation.
		return messageID
	}
	return msg
}

// errNoSuchHandler matches manager.rs's "no such handler" dispatch miss.
func errNoSuchHandler(name string) error {
	return &ScriptError{msg: localize("NoSuchHandler", map[string]any{"Name": name})}
}

// errCannotCallOn matches manager.rs's "cannot call X on Y" receiver-type
// mismatch.
func errCannotCallOn(name string, d Datum) error {
	return &ScriptError{msg: localize("CannotCallOn", map[string]any{"Name": name, "Type": d.TypeStr()})}
}

func errWrongArgCount(name string, want, got int) error {
	return &ScriptError{msg: localize("WrongArgCount", map[string]any{"Name": name, "Want": want, "Got": got})}
}

func errWrongArgType(name string, index int, want string, got Datum) error {
	return &ScriptError{msg: localize("WrongArgType", map[string]any{"Name": name, "Index": index, "Want": want, "Got": got.TypeStr()})}
}

func errIndexOutOfBounds(kind string, index, length int) error {
	return &ScriptError{msg: localize("IndexOutOfBounds", map[string]any{"Kind": kind, "Index": index, "Length": length})}
}

func errNotAList(op string, d Datum) error {
	return &ScriptError{msg: localize("NotAList", map[string]any{"Op": op, "Type": d.TypeStr()})}
}

func errKeyNotFound(key Datum) error {
	return &ScriptError{msg: localize("KeyNotFound", map[string]any{"Key": FormatDatum(key)})}
}
