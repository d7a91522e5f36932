// Command lingo-dump decompiles one handler's bytecode to readable Lingo
// source plus its bytecode-index-to-line map (spec.md §3/§4.8). Bytecode
// is supplied symbolically as TOML rather than raw chunk bytes: the script
// chunk reader that turns a compiled .dir's handler bytes into named
// opcodes is out of scope (internal/lingo.HandlerDef's own doc comment:
// "consumed here as a plain value"), so this CLI's input format authors
// that already-decoded form directly. Grounded on the teacher's
// cmd/corelx's offline-compile-and-dump shape, generalized from
// "compile source" to "decompile bytecode".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"directorcore/internal/lingo"
)

// handlerFile is one handler's bytecode, literal pool, and name table,
// authored as TOML in place of the out-of-scope chunk reader's output.
type handlerFile struct {
	Name       string            `toml:"name"`
	Arguments  []string          `toml:"arguments"`
	Locals     []string          `toml:"locals"`
	Names      []string          `toml:"names"`
	Version    uint16            `toml:"version"`
	Multiplier uint32            `toml:"multiplier"`
	Literals   []literalEntry    `toml:"literals"`
	Bytecode   []instructionLine `toml:"bytecode"`
}

type literalEntry struct {
	Kind  string  `toml:"kind"` // "void" | "string" | "int" | "float"
	Str   string  `toml:"str"`
	Int   int32   `toml:"int"`
	Float float64 `toml:"float"`
}

type instructionLine struct {
	Op      string `toml:"op"`
	Operand int32  `toml:"operand"`
	Pos     int    `toml:"pos"`
}

func main() {
	path := flag.String("handler", "", "Path to a handler TOML file (see cmd/lingo-dump doc comment)")
	flag.Parse()

	if *path == "" {
		fmt.Println("Usage: lingo-dump -handler <path.toml>")
		os.Exit(1)
	}

	var hf handlerFile
	if _, err := toml.DecodeFile(*path, &hf); err != nil {
		fmt.Fprintf(os.Stderr, "lingo-dump: decode %s: %v\n", *path, err)
		os.Exit(1)
	}

	handler, chunk, ctx := buildHandler(hf)
	out := lingo.Decompile(handler, chunk, ctx, hf.Version, hf.Multiplier)

	fmt.Printf("on %s %s\n", out.Name, joinArgs(out.Arguments))
	for _, line := range out.Lines {
		fmt.Printf("%*s%s\n", line.Indent*2, "", line.Text)
	}
	fmt.Println("end")

	fmt.Println()
	fmt.Println("-- bytecode index -> line --")
	for idx := 0; idx < len(hf.Bytecode); idx++ {
		if lineIdx, ok := out.BytecodeToLine[idx]; ok {
			fmt.Printf("%4d -> line %d\n", idx, lineIdx)
		}
	}
}

func joinArgs(args []string) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a
	}
	return s
}

func buildHandler(hf handlerFile) (*lingo.HandlerDef, *lingo.ScriptChunk, *lingo.ScriptContext) {
	names := hf.Names
	nameID := make(map[string]int64, len(names))
	for i, n := range names {
		nameID[n] = int64(i)
	}

	argIDs := make([]int64, len(hf.Arguments))
	for i, a := range hf.Arguments {
		argIDs[i] = nameID[a]
	}
	localIDs := make([]int64, len(hf.Locals))
	for i, l := range hf.Locals {
		localIDs[i] = nameID[l]
	}

	bytecode := make([]lingo.Instruction, len(hf.Bytecode))
	for i, in := range hf.Bytecode {
		bytecode[i] = lingo.Instruction{Opcode: lingo.OpCode(in.Op), Operand: in.Operand, Pos: in.Pos}
	}

	literals := make([]lingo.Literal, len(hf.Literals))
	for i, l := range hf.Literals {
		kind := lingo.LiteralVoid
		switch l.Kind {
		case "string":
			kind = lingo.LiteralString
		case "int":
			kind = lingo.LiteralInt
		case "float":
			kind = lingo.LiteralFloat
		}
		literals[i] = lingo.Literal{Kind: kind, Str: l.Str, Int: l.Int, Float: l.Float}
	}

	handler := &lingo.HandlerDef{
		NameID:          nameID[hf.Name],
		ArgumentNameIDs: argIDs,
		LocalNameIDs:    localIDs,
		Bytecode:        bytecode,
	}
	chunk := &lingo.ScriptChunk{Literals: literals, Handlers: []lingo.HandlerDef{*handler}}
	ctx := &lingo.ScriptContext{Names: names}
	return handler, chunk, ctx
}
