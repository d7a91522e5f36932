package builtin

import (
	"strconv"
	"strings"
)

// MovieContext is the host/player surface the event built-ins dispatch
// through: frame/label queries, sprite event dispatch, global handler
// calls, and the currently-down key set. Grounded on manager.rs's
// MovieHandlers/reserve_player_ref indirection (built-ins never hold
// player state directly, they call back into it) and on
// internal/sprite.Machine.DispatchEvent for the sprite-dispatch shape.
type MovieContext interface {
	CurrentFrame() int
	FrameLabel(frame int) (string, bool)
	IsFrameReady(frame int) bool
	DispatchSprite(channel int, event string, args []Datum) (bool, error)
	DispatchAllSprites(event string, args []Datum) (bool, error)
	CallGlobalHandler(name string, args []Datum) (Datum, error)
	KeysDown() []int
}

// SetContext installs the MovieContext the event handlers dispatch
// through. Must be called before any event built-in is invoked; handlers
// called with no context installed return a ScriptError.
func (r *Registry) SetContext(ctx MovieContext) {
	r.ctx = ctx
}

func (r *Registry) requireContext() (MovieContext, error) {
	if r.ctx == nil {
		return nil, &ScriptError{msg: "no movie context installed"}
	}
	return r.ctx, nil
}

func registerEventHandlers(r *Registry) {
	r.Register("label", r.eventLabel)
	r.Register("marker", r.eventMarker)
	r.Register("frameReady", r.eventFrameReady)
	r.Register("call", r.eventCall)
	r.Register("sendSprite", r.eventSendSprite)
	r.Register("sendAllSprites", r.eventSendAllSprites)
	r.Register("do", r.eventDo)
	r.Register("value", r.eventValue)
	r.Register("keyPressed", r.eventKeyPressed)
	r.Register("externalEvent", r.eventExternalEvent)
}

func (r *Registry) eventLabel(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	frame := ctx.CurrentFrame()
	if len(args) > 0 {
		if f, err := args[0].IntValue(); err == nil {
			frame = int(f)
		}
	}
	if name, ok := ctx.FrameLabel(frame); ok {
		return StringDatum(name), nil
	}
	return Void(), nil
}

// eventMarker finds the nearest label at or before currentFrame+delta.
func (r *Registry) eventMarker(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	delta := int32(0)
	if len(args) > 0 {
		delta, _ = args[0].IntValue()
	}
	frame := ctx.CurrentFrame() + int(delta)
	for f := frame; f >= 0; f-- {
		if name, ok := ctx.FrameLabel(f); ok {
			return StringDatum(name), nil
		}
	}
	return Void(), nil
}

func (r *Registry) eventFrameReady(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	return boolDatum(ctx.IsFrameReady(ctx.CurrentFrame())), nil
}

func (r *Registry) eventCall(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	name := arg(args, 0)
	if name.Kind != KindSymbol && name.Kind != KindString {
		return Void(), errWrongArgType("call", 0, "symbol/string", name)
	}
	handlerName := name.Str
	if name.Kind == KindSymbol {
		handlerName = name.Symbol
	}
	return ctx.CallGlobalHandler(handlerName, args[1:])
}

func (r *Registry) eventSendSprite(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	channel, err := arg(args, 0).IntValue()
	if err != nil {
		return Void(), err
	}
	eventName := arg(args, 1)
	handled, err := ctx.DispatchSprite(int(channel), eventNameOf(eventName), args[2:])
	if err != nil {
		return Void(), err
	}
	return boolDatum(handled), nil
}

func (r *Registry) eventSendAllSprites(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	eventName := arg(args, 0)
	handled, err := ctx.DispatchAllSprites(eventNameOf(eventName), args[1:])
	if err != nil {
		return Void(), err
	}
	return boolDatum(handled), nil
}

func eventNameOf(d Datum) string {
	if d.Kind == KindSymbol {
		return d.Symbol
	}
	return d.Str
}

// eventDo parses a "name(args)" call expression and dispatches to a
// global handler, matching spec.md §4.9's do(code). Only the flat
// call-expression form is supported; full Lingo statement execution is
// out of scope for this core (the decompiler, C8, is the only consumer
// of full bytecode semantics).
func (r *Registry) eventDo(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	code := arg(args, 0)
	if code.Kind != KindString {
		return Void(), errWrongArgType("do", 0, "string", code)
	}
	name, rawArgs, ok := parseCallExpr(code.Str)
	if !ok {
		return Void(), &ScriptError{msg: "do: cannot parse call expression " + code.Str}
	}
	parsed := make([]Datum, len(rawArgs))
	for i, a := range rawArgs {
		parsed[i] = r.eventValueOf(a)
	}
	return ctx.CallGlobalHandler(name, parsed)
}

// eventValue evaluates a Lingo-literal string into a Datum (spec.md
// §4.9's value(s)).
func (r *Registry) eventValue(args []Datum) (Datum, error) {
	code := arg(args, 0)
	if code.Kind != KindString {
		return Void(), errWrongArgType("value", 0, "string", code)
	}
	return r.eventValueOf(code.Str), nil
}

func (r *Registry) eventValueOf(literal string) Datum {
	return parseLingoLiteral(strings.TrimSpace(literal))
}

// parseCallExpr splits "name(a, b, c)" into its handler name and raw,
// comma-separated argument strings. Nested parens/quotes are not
// supported; do() is meant for simple dispatch calls.
func parseCallExpr(s string) (name string, rawArgs []string, ok bool) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	name = strings.TrimSpace(s[:open])
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner == "" {
		return name, nil, true
	}
	for _, part := range strings.Split(inner, ",") {
		rawArgs = append(rawArgs, strings.TrimSpace(part))
	}
	return name, rawArgs, true
}

// charToKeyCode maps an uppercase ASCII letter to its keyboard scan code
// so that keyPressed("a") and keyPressed(<code for A>) are equivalent,
// matching spec.md §8's Keypress symmetry law. Not sourced from
// original_source (its keyboard-map table was not part of the retrieved
// excerpt); self-authored using the common ASCII-letter-equals-scancode
// convention the law itself describes.
var charToKeyCode = func() map[rune]int {
	m := make(map[rune]int, 26)
	for c := 'A'; c <= 'Z'; c++ {
		m[c] = int(c)
	}
	return m
}()

// normalizeKeyInput maps either a single-character string or an already
// numeric key code to a canonical key code.
func normalizeKeyInput(d Datum) (int, bool) {
	switch d.Kind {
	case KindString:
		if len(d.Str) != 1 {
			return 0, false
		}
		r := []rune(strings.ToUpper(d.Str))[0]
		if code, ok := charToKeyCode[r]; ok {
			return code, true
		}
		return int(r), true
	case KindInt:
		return int(d.Int), true
	default:
		return 0, false
	}
}

func (r *Registry) eventKeyPressed(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	code, ok := normalizeKeyInput(arg(args, 0))
	if !ok {
		return boolDatum(false), nil
	}
	for _, down := range ctx.KeysDown() {
		if down == code {
			return boolDatum(true), nil
		}
	}
	return boolDatum(false), nil
}

// eventExternalEvent forwards a named external event with its payload to
// the global handler of the same name, matching spec.md §4.9's
// externalEvent helper (host-originated events routed through the same
// global-handler dispatch as call()).
func (r *Registry) eventExternalEvent(args []Datum) (Datum, error) {
	ctx, err := r.requireContext()
	if err != nil {
		return Void(), err
	}
	name := arg(args, 0)
	return ctx.CallGlobalHandler(eventNameOf(name), args[1:])
}

// parseLingoLiteral parses an individual Lingo literal: a quoted string,
// a #symbol, an integer, a float, or VOID; anything else falls back to a
// bare string (spec.md's I/O formatting rules read in reverse).
func parseLingoLiteral(s string) Datum {
	switch {
	case s == "" || s == "VOID" || s == "<Void>":
		return Void()
	case strings.HasPrefix(s, "#"):
		return SymbolDatum(s[1:])
	case len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"':
		return StringDatum(s[1 : len(s)-1])
	default:
		if n, err := strconv.ParseInt(s, 10, 32); err == nil {
			return IntDatum(int32(n))
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return FloatDatum(f)
		}
		return StringDatum(s)
	}
}
