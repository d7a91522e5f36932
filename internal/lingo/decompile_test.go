package lingo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildIfElse constructs a handler for:
//
//	on check a
//	  if a then
//	    return 1
//	  else
//	    return 2
//	  end if
//	end
//
// using an explicit Jmp past the else branch, matching how the bytecode
// compiler emits an if/else (spec.md §4.8 "the then-block's closing Jmp
// marks an else branch").
func buildIfElse() (*HandlerDef, *ScriptChunk, *ScriptContext) {
	ctx := &ScriptContext{Names: []string{"check", "a"}}
	chunk := &ScriptChunk{Literals: []Literal{
		{Kind: LiteralInt, Int: 1},
		{Kind: LiteralInt, Int: 2},
	}}

	pos := func(i int) int { return i * 2 }
	bc := make([]Instruction, 8)
	bc[0] = Instruction{Opcode: OpGetParam, Operand: 0, Pos: pos(0)}
	// JmpIfZ jumps to the else branch (index 4) when a is falsy.
	bc[1] = Instruction{Opcode: OpJmpIfZ, Operand: int32(pos(4) - pos(1)), Pos: pos(1)}
	bc[2] = Instruction{Opcode: OpPushCons, Operand: 0, Pos: pos(2)}
	// Unconditional Jmp past the else branch (index 6).
	bc[3] = Instruction{Opcode: OpJmp, Operand: int32(pos(6) - pos(3)), Pos: pos(3)}
	bc[4] = Instruction{Opcode: OpPushCons, Operand: 1, Pos: pos(4)}
	bc[5] = Instruction{Opcode: OpRet, Pos: pos(5)}
	bc[6] = Instruction{Opcode: OpRet, Pos: pos(6)}
	bc[7] = Instruction{Opcode: OpRet, Pos: pos(7)}

	h := &HandlerDef{NameID: 0, ArgumentNameIDs: []int64{1}, Bytecode: bc}
	return h, chunk, ctx
}

func TestDecompileIfElse(t *testing.T) {
	h, chunk, ctx := buildIfElse()
	out := Decompile(h, chunk, ctx, 500, 1)

	require.Equal(t, "check", out.Name)
	require.Equal(t, []string{"a"}, out.Arguments)
	require.NotEmpty(t, out.Lines)

	var texts []string
	for _, l := range out.Lines {
		texts = append(texts, l.Text)
	}
	require.Contains(t, texts, "if a then")
	require.Contains(t, texts, "else")
	require.Contains(t, texts, "end if")

	for i, l := range out.Lines {
		if l.Text == "else" || l.Text == "end if" {
			require.Empty(t, l.BytecodeIndices, "closing-keyword line %q must carry no bytecode indices", l.Text)
			_ = i
		}
	}
}

func TestDecompileRepeatWithIn(t *testing.T) {
	bc, ctx := buildRepeatWithIn()
	ctx.Names = append(ctx.Names, "myHandler")
	h := &HandlerDef{NameID: int64(len(ctx.Names) - 1), Bytecode: bc}
	chunk := &ScriptChunk{}

	out := Decompile(h, chunk, ctx, 500, 1)
	require.NotEmpty(t, out.Lines)

	found := false
	for _, l := range out.Lines {
		if l.Text == "end repeat" {
			found = true
		}
	}
	require.True(t, found, "expected a closing 'end repeat' line")
}
