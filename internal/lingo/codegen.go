package lingo

import (
	"fmt"
	"strconv"
	"strings"
)

// generateOutput walks the reconstructed AST and produces the handler's
// source lines plus its bytecode->line map (spec.md §4.8 "Bytecode->line
// map"): each emitted statement accumulates the bytecode indices that
// produced it; after codegen, lines are matched to statements in order,
// skipping purely syntactic lines (`end if`, `end repeat`, `else`, `end
// tell`), which carry zero bytecode indices.
func (s *state) generateOutput() *DecompiledHandler {
	out := &DecompiledHandler{
		Name:          s.ctx.name(s.handler.NameID),
		Arguments:     s.argNames(),
		BytecodeToLine: make(map[int]int),
	}

	var lines []DecompiledLine
	emitBlock(s.root, 0, s.stmtIndices, &lines)

	out.Lines = lines
	for lineIdx, line := range lines {
		for _, bc := range line.BytecodeIndices {
			out.BytecodeToLine[bc] = lineIdx
		}
	}
	return out
}

func emitBlock(b *Block, indent int, idx map[AstNode][]int, lines *[]DecompiledLine) {
	for _, stmt := range b.Statements {
		emitStatement(stmt, indent, idx, lines)
	}
}

func emitStatement(node AstNode, indent int, idx map[AstNode][]int, lines *[]DecompiledLine) {
	bc := idx[node]
	switch n := node.(type) {
	case *If:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("if %s then", exprText(n.Cond)), BytecodeIndices: bc, Indent: indent})
		emitBlock(n.Then, indent+1, idx, lines)
		if n.Else != nil {
			*lines = append(*lines, DecompiledLine{Text: "else", Indent: indent})
			emitBlock(n.Else, indent+1, idx, lines)
		}
		*lines = append(*lines, DecompiledLine{Text: "end if", Indent: indent})

	case *RepeatWhile:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("repeat while %s", exprText(n.Cond)), BytecodeIndices: bc, Indent: indent})
		emitBlock(n.Body, indent+1, idx, lines)
		*lines = append(*lines, DecompiledLine{Text: "end repeat", Indent: indent})

	case *RepeatWithIn:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("repeat with %s in %s", n.Var, exprText(n.List)), BytecodeIndices: bc, Indent: indent})
		emitBlock(n.Body, indent+1, idx, lines)
		*lines = append(*lines, DecompiledLine{Text: "end repeat", Indent: indent})

	case *RepeatWithTo:
		dir := "to"
		if n.DownTo {
			dir = "down to"
		}
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("repeat with %s = %s %s %s", n.Var, exprText(n.From), dir, exprText(n.To)), BytecodeIndices: bc, Indent: indent})
		emitBlock(n.Body, indent+1, idx, lines)
		*lines = append(*lines, DecompiledLine{Text: "end repeat", Indent: indent})

	case *Tell:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("tell %s", exprText(n.Window)), BytecodeIndices: bc, Indent: indent})
		emitBlock(n.Block, indent+1, idx, lines)
		*lines = append(*lines, DecompiledLine{Text: "end tell", Indent: indent})

	case *Assignment:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("set %s = %s", exprText(n.Variable), exprText(n.Value)), BytecodeIndices: bc, Indent: indent})

	case *ChunkPut:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("put %s %s %s", exprText(n.Value), n.Kind, exprText(n.Chunk)), BytecodeIndices: bc, Indent: indent})

	case *ChunkHilite:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("hilite %s", exprText(n.Chunk)), BytecodeIndices: bc, Indent: indent})

	case *ChunkDelete:
		*lines = append(*lines, DecompiledLine{Text: fmt.Sprintf("delete %s", exprText(n.Chunk)), BytecodeIndices: bc, Indent: indent})

	case *ExitRepeat:
		*lines = append(*lines, DecompiledLine{Text: "exit repeat", BytecodeIndices: bc, Indent: indent})

	case *NextRepeat:
		*lines = append(*lines, DecompiledLine{Text: "next repeat", BytecodeIndices: bc, Indent: indent})

	case *Exit:
		*lines = append(*lines, DecompiledLine{Text: "exit", BytecodeIndices: bc, Indent: indent})

	case *Comment:
		*lines = append(*lines, DecompiledLine{Text: "-- " + n.Text, BytecodeIndices: bc, Indent: indent})

	default:
		// A bare expression used as a statement (e.g. a Call whose result
		// is discarded).
		*lines = append(*lines, DecompiledLine{Text: exprText(node), BytecodeIndices: bc, Indent: indent})
	}
}

// exprText renders an expression node as Lingo source text.
func exprText(node AstNode) string {
	switch n := node.(type) {
	case nil:
		return "<Void>"
	case *Literal:
		return literalText(n)
	case *Var:
		return n.Name
	case *BinaryOp:
		return fmt.Sprintf("%s %s %s", exprText(n.Left), opSymbol(n.Opcode), exprText(n.Right))
	case *InverseOp:
		return "-" + exprText(n.Operand)
	case *NotOp:
		return "not " + exprText(n.Operand)
	case *ChunkExpr:
		if n.Last != nil && !isZero(n.Last) {
			return fmt.Sprintf("%s %s to %s of %s", n.ChunkType, exprText(n.First), exprText(n.Last), exprText(n.Of))
		}
		return fmt.Sprintf("%s %s of %s", n.ChunkType, exprText(n.First), exprText(n.Of))
	case *ChunkHilite:
		return fmt.Sprintf("hilite %s", exprText(n.Chunk))
	case *ChunkDelete:
		return fmt.Sprintf("delete %s", exprText(n.Chunk))
	case *Member:
		if n.CastID != nil {
			return fmt.Sprintf("%s %s of castLib %s", n.MemberType, exprText(n.MemberID), exprText(n.CastID))
		}
		return fmt.Sprintf("%s %s", n.MemberType, exprText(n.MemberID))
	case *Call:
		return fmt.Sprintf("%s(%s)", n.Name, joinArgs(n.Args))
	case *ObjCallV4:
		return fmt.Sprintf("%s(%s)", exprText(n.Obj), joinArgs(n.Args))
	case *ObjProp:
		return fmt.Sprintf("%s.%s", exprText(n.Obj), n.Prop)
	case *ObjBracket:
		return fmt.Sprintf("%s[%s]", exprText(n.Obj), exprText(n.Index))
	case *NewObj:
		return fmt.Sprintf("new(%s%s)", n.ScriptName, argsSuffix(n.Args))
	case *SpriteIntersects:
		return fmt.Sprintf("%s intersects %s", exprText(n.First), exprText(n.Second))
	case *SpriteWithin:
		return fmt.Sprintf("%s within %s", exprText(n.First), exprText(n.Second))
	case *Assignment:
		return fmt.Sprintf("(%s = %s)", exprText(n.Variable), exprText(n.Value))
	case *ErrorNode:
		return "<error>"
	case *Comment:
		return "-- " + n.Text
	default:
		return "<?>"
	}
}

func argsSuffix(args []AstNode) string {
	if len(args) == 0 {
		return ""
	}
	return ", " + joinArgs(args)
}

func joinArgs(args []AstNode) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = exprText(a)
	}
	return strings.Join(parts, ", ")
}

// literalText renders a literal datum the way Lingo's `put` command does
// (spec.md §4.9): quoted strings, hash-prefixed symbols, `<Void>` for null.
func literalText(l *Literal) string {
	switch l.Kind {
	case DatumVoid:
		return "<Void>"
	case DatumString:
		return strconv.Quote(l.Str)
	case DatumInt:
		return strconv.Itoa(int(l.Int))
	case DatumFloatVal:
		return strconv.FormatFloat(l.Float, 'g', -1, 64)
	case DatumSymbol:
		return "#" + l.Str
	case DatumVarRef:
		return l.Str
	case DatumList, DatumArgList, DatumArgListNoRet:
		return "[" + joinArgs(l.Elems) + "]"
	case DatumPropList:
		var parts []string
		for i := 0; i+1 < len(l.Elems); i += 2 {
			parts = append(parts, fmt.Sprintf("%s: %s", exprText(l.Elems[i]), exprText(l.Elems[i+1])))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "<?>"
	}
}

func opSymbol(op OpCode) string {
	switch op {
	case OpMul:
		return "*"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpDiv:
		return "/"
	case OpMod:
		return "mod"
	case OpJoinStr:
		return "&"
	case OpJoinPadStr:
		return "&&"
	case OpLt:
		return "<"
	case OpLtEq:
		return "<="
	case OpNtEq:
		return "<>"
	case OpEq:
		return "="
	case OpGt:
		return ">"
	case OpGtEq:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpContainsStr:
		return "contains"
	case OpContains0Str:
		return "starts"
	default:
		return "?"
	}
}
