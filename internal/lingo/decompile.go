package lingo

import "fmt"

// DecompiledLine is one emitted source line, the set of bytecode indices
// that produced it, and its indentation depth.
type DecompiledLine struct {
	Text             string
	BytecodeIndices  []int
	Indent           int
}

// DecompiledHandler is a handler's decompiled form: per spec.md §3 "name,
// ordered argument names, ordered output lines, and a mapping from
// bytecode index to line index".
type DecompiledHandler struct {
	Name          string
	Arguments     []string
	Lines         []DecompiledLine
	BytecodeToLine map[int]int
}

type stackEntry struct {
	node    AstNode
	indices []int
}

// state is the transient decompilation state for one handler (spec.md §3
// "Decompiler state"): the operand stack, block stack, loop tags, and the
// position->index map.
type state struct {
	handler *HandlerDef
	chunk   *ScriptChunk
	ctx     *ScriptContext
	version uint16
	multiplier uint32

	stack []stackEntry

	root    *Block
	current *Block
	blockStack []*Block

	tagger *loopTagger

	posIdx map[int]int

	currentIdx int

	// stmtIndices maps each emitted statement node to the bytecode indices
	// that produced it, keyed by node identity (pointer equality) since
	// the same block can otherwise hold structurally-equal nodes.
	stmtIndices map[AstNode][]int

	// ifOwner maps a Then-block to the If node it belongs to, so run()
	// can recognize the then-block's trailing unconditional Jmp (which
	// skips over an else branch) and splice in an Else block instead of
	// just closing the If.
	ifOwner map[*Block]*If
}

// Decompile runs both phases of spec.md §4.8 against one handler and
// returns its reconstructed source plus bytecode->line map.
func Decompile(h *HandlerDef, chunk *ScriptChunk, ctx *ScriptContext, version uint16, multiplier uint32) *DecompiledHandler {
	posIdx := make(map[int]int, len(h.Bytecode))
	for i, ins := range h.Bytecode {
		posIdx[ins.Pos] = i
	}

	s := &state{
		handler: h, chunk: chunk, ctx: ctx, version: version, multiplier: multiplier,
		root: newBlock(-1), posIdx: posIdx, ifOwner: make(map[*Block]*If),
		stmtIndices: make(map[AstNode][]int),
	}
	s.current = s.root

	tagger := newLoopTagger(h.Bytecode, ctx)
	tagger.TagLoops()
	s.tagger = tagger

	s.run()

	return s.generateOutput()
}

func (s *state) run() {
	i := 0
	for i < len(s.handler.Bytecode) {
		pos := s.handler.Bytecode[i].Pos
		for pos == s.current.EndPos {
			s.exitBlock()
		}
		s.currentIdx = i
		i += s.translate(i)
	}
}

func (s *state) pop() (AstNode, []int) {
	if len(s.stack) == 0 {
		return &ErrorNode{}, nil
	}
	e := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	return e.node, e.indices
}

func (s *state) popInto(indices *[]int) AstNode {
	n, idx := s.pop()
	*indices = append(*indices, idx...)
	return n
}

func (s *state) pushWithIndices(node AstNode, indices []int) {
	all := append(append([]int{}, indices...), s.currentIdx)
	s.stack = append(s.stack, stackEntry{node: node, indices: all})
}

func (s *state) enterBlock(b *Block) {
	s.blockStack = append(s.blockStack, s.current)
	s.current = b
}

func (s *state) exitBlock() {
	if len(s.blockStack) == 0 {
		return
	}
	s.current = s.blockStack[len(s.blockStack)-1]
	s.blockStack = s.blockStack[:len(s.blockStack)-1]
}

func (s *state) addStatement(node AstNode, indices []int) {
	s.current.Statements = append(s.current.Statements, node)
	s.stmtIndices[node] = indices
}

func (s *state) argNames() []string {
	names := make([]string, len(s.handler.ArgumentNameIDs))
	for i, id := range s.handler.ArgumentNameIDs {
		names[i] = s.ctx.name(id)
	}
	return names
}

func (s *state) argumentName(id int32) string {
	idx := int(id) / int(orOne(s.multiplier))
	if idx >= 0 && idx < len(s.handler.ArgumentNameIDs) {
		return s.ctx.name(s.handler.ArgumentNameIDs[idx])
	}
	return fmt.Sprintf("arg_%d", idx)
}

func (s *state) localName(id int32) string {
	idx := int(id) / int(orOne(s.multiplier))
	if idx >= 0 && idx < len(s.handler.LocalNameIDs) {
		return s.ctx.name(s.handler.LocalNameIDs[idx])
	}
	return fmt.Sprintf("local_%d", idx)
}

func orOne(m uint32) uint32 {
	if m == 0 {
		return 1
	}
	return m
}

// varNameFromSet returns the variable name a Set*/instruction at idx
// assigns, used to recover a repeat loop's counter/list-item variable name.
func (s *state) varNameFromSet(idx int) string {
	ins := s.handler.Bytecode[idx]
	switch ins.Opcode {
	case OpSetGlobal, OpSetGlobal2, OpSetProp:
		return s.ctx.name(int64(ins.Operand))
	case OpSetParam:
		return s.argumentName(ins.Operand)
	case OpSetLocal:
		return s.localName(ins.Operand)
	default:
		return "unknown"
	}
}

// translate performs Phase 2 of spec.md §4.8 for one bytecode instruction
// and returns how many slots to advance (always 1 — loop-internal
// bookkeeping is skipped in place, not removed from the stream).
func (s *state) translate(index int) int {
	info := s.tagger.tags[index]
	if info.tag == TagSkip || info.tag == TagNextRepeatTarget {
		return 1
	}

	ins := s.handler.Bytecode[index]
	op := ins.Opcode
	obj := ins.Operand

	var nextBlock *Block
	indices := []int{index}

	var node AstNode
	var isNode bool
	var discarded bool

	switch op {
	case OpRet, OpRetFactory:
		if index != len(s.handler.Bytecode)-1 {
			node, isNode = &Exit{}, true
		}

	case OpPushZero:
		node, isNode = &Literal{Kind: DatumInt, Int: 0}, true

	case OpMul, OpAdd, OpSub, OpDiv, OpMod, OpJoinStr, OpJoinPadStr,
		OpLt, OpLtEq, OpNtEq, OpEq, OpGt, OpGtEq, OpAnd, OpOr,
		OpContainsStr, OpContains0Str:
		b := s.popInto(&indices)
		a := s.popInto(&indices)
		node, isNode = &BinaryOp{Opcode: op, Left: a, Right: b}, true

	case OpInv:
		node, isNode = &InverseOp{Operand: s.popInto(&indices)}, true

	case OpNot:
		node, isNode = &NotOp{Operand: s.popInto(&indices)}, true

	case OpGetChunk:
		str := s.popInto(&indices)
		node, isNode = s.readChunkRef(str, &indices), true

	case OpHiliteChunk:
		var castID AstNode
		if s.version >= 500 {
			castID = s.popInto(&indices)
		}
		fieldID := s.popInto(&indices)
		field := &Member{MemberType: "field", MemberID: fieldID, CastID: castID}
		chunk := s.readChunkRef(field, &indices)
		node, isNode = &ChunkHilite{Chunk: chunk}, true

	case OpDeleteChunk:
		var castID AstNode
		if s.version >= 500 {
			castID = s.popInto(&indices)
		}
		fieldID := s.popInto(&indices)
		field := &Member{MemberType: "field", MemberID: fieldID, CastID: castID}
		chunk := s.readChunkRef(field, &indices)
		node, isNode = &ChunkDelete{Chunk: chunk}, true

	case OpOntoSpr:
		second := s.popInto(&indices)
		first := s.popInto(&indices)
		node, isNode = &SpriteIntersects{First: first, Second: second}, true

	case OpIntoSpr:
		second := s.popInto(&indices)
		first := s.popInto(&indices)
		node, isNode = &SpriteWithin{First: first, Second: second}, true

	case OpGetField:
		var castID AstNode
		if s.version >= 500 {
			castID = s.popInto(&indices)
		}
		fieldID := s.popInto(&indices)
		node, isNode = &Member{MemberType: "field", MemberID: fieldID, CastID: castID}, true

	case OpStartTell:
		window := s.popInto(&indices)
		b := newBlock(-1)
		node, isNode = &Tell{Window: window, Block: b}, true
		nextBlock = b

	case OpEndTell:
		s.exitBlock()

	case OpPushList:
		v := s.popInto(&indices)
		if lit, ok := v.(*Literal); ok {
			lit2 := *lit
			lit2.Kind = DatumList
			node, isNode = &lit2, true
		} else {
			node, isNode = v, true
		}

	case OpPushPropList:
		v := s.popInto(&indices)
		if lit, ok := v.(*Literal); ok {
			lit2 := *lit
			lit2.Kind = DatumPropList
			node, isNode = &lit2, true
		} else {
			node, isNode = v, true
		}

	case OpSwap:
		if len(s.stack) >= 2 {
			n := len(s.stack)
			s.stack[n-1], s.stack[n-2] = s.stack[n-2], s.stack[n-1]
		}

	case OpPushInt8, OpPushInt16, OpPushInt32:
		node, isNode = &Literal{Kind: DatumInt, Int: obj}, true

	case OpPushFloat32:
		node, isNode = &Literal{Kind: DatumFloatVal, Float: float32FromBits(obj)}, true

	case OpPushArgListNoRet:
		node, isNode = &Literal{Kind: DatumArgListNoRet, Elems: s.popN(int(obj), &indices)}, true

	case OpPushArgList:
		node, isNode = &Literal{Kind: DatumArgList, Elems: s.popN(int(obj), &indices)}, true

	case OpPushCons:
		litID := int(obj) / int(orOne(s.multiplier))
		if litID >= 0 && litID < len(s.chunk.Literals) {
			lit := s.chunk.Literals[litID]
			switch lit.Kind {
			case LiteralString:
				node = &Literal{Kind: DatumString, Str: lit.Str}
			case LiteralInt:
				node = &Literal{Kind: DatumInt, Int: lit.Int}
			case LiteralFloat:
				node = &Literal{Kind: DatumFloatVal, Float: lit.Float}
			default:
				node = &Literal{Kind: DatumVoid}
			}
			isNode = true
		} else {
			node, isNode = &ErrorNode{}, true
		}

	case OpPushSymb:
		node, isNode = &Literal{Kind: DatumSymbol, Str: s.ctx.name(int64(obj))}, true

	case OpPushVarRef:
		node, isNode = &Literal{Kind: DatumVarRef, Str: s.ctx.name(int64(obj))}, true

	case OpGetGlobal, OpGetGlobal2, OpGetProp:
		node, isNode = &Var{Name: s.ctx.name(int64(obj))}, true

	case OpGetParam:
		node, isNode = &Var{Name: s.argumentName(obj)}, true

	case OpGetLocal:
		node, isNode = &Var{Name: s.localName(obj)}, true

	case OpSetGlobal, OpSetGlobal2, OpSetProp:
		value := s.popInto(&indices)
		node, isNode = &Assignment{Variable: &Var{Name: s.ctx.name(int64(obj))}, Value: value}, true

	case OpSetParam:
		value := s.popInto(&indices)
		node, isNode = &Assignment{Variable: &Var{Name: s.argumentName(obj)}, Value: value}, true

	case OpSetLocal:
		value := s.popInto(&indices)
		node, isNode = &Assignment{Variable: &Var{Name: s.localName(obj)}, Value: value}, true

	case OpJmp:
		node, isNode = s.translateJmp(index, obj)

	case OpEndRepeat:
		node, isNode = &Comment{Text: "ERROR: stray endrepeat"}, true

	case OpJmpIfZ:
		node, isNode = s.translateJmpIfZ(index, obj, &nextBlock, &indices)

	case OpLocalCall:
		argList := s.popInto(&indices)
		lit, _ := argList.(*Literal)
		discarded = lit != nil && lit.Kind == DatumArgListNoRet
		name := s.localHandlerName(int(obj))
		node, isNode = &Call{Name: name, Args: asArgs(argList)}, true

	case OpExtCall, OpTellCall:
		name := s.ctx.name(int64(obj))
		argList := s.popInto(&indices)
		lit, _ := argList.(*Literal)
		discarded = lit != nil && lit.Kind == DatumArgListNoRet
		node, isNode = &Call{Name: name, Args: asArgs(argList)}, true

	case OpObjCallV4:
		argList := s.popInto(&indices)
		object := s.popInto(&indices)
		node, isNode = &ObjCallV4{Obj: object, Args: asArgs(argList)}, true

	case OpObjCall:
		method := s.ctx.name(int64(obj))
		argList := s.popInto(&indices)
		lit, _ := argList.(*Literal)
		discarded = lit != nil && lit.Kind == DatumArgListNoRet
		node, isNode = s.translateObjCall(method, argList), true

	case OpPushChunkVarRef:
		node, isNode = s.readVar(int64(obj), &indices), true

	case OpGetTopLevelProp:
		node, isNode = &Var{Name: s.ctx.name(int64(obj))}, true

	case OpNewObj:
		argList := s.popInto(&indices)
		node, isNode = &NewObj{ScriptName: s.ctx.name(int64(obj)), Args: asArgs(argList)}, true

	case OpGet, OpGetMovieProp, OpGetObjProp, OpGetChainedProp:
		node, isNode = s.translateGet(op, obj, &indices)

	case OpSet, OpSetMovieProp, OpSetObjProp:
		node, isNode = s.translateSet(op, obj, &indices)

	case OpPut:
		node, isNode = s.translatePut(obj, &indices)

	case OpPutChunk:
		value := s.popInto(&indices)
		chunk := s.readChunkRef(s.popInto(&indices), &indices)
		node, isNode = &ChunkPut{Kind: "into", Value: value, Chunk: chunk}, true

	case OpPeek, OpPop, OpTheBuiltin:
		// Loop-internal bookkeeping reaching here (untagged) is a decompiler
		// recovery gap: surface it rather than silently dropping state.
		node, isNode = &Comment{Text: fmt.Sprintf("unhandled bookkeeping opcode %s", op)}, true

	default:
		s.stack = nil
		node, isNode = &Comment{Text: fmt.Sprintf("Unknown opcode %s %d", op, obj)}, true
	}

	if isNode && node != nil {
		if IsExpression(node) && !discarded {
			s.pushWithIndices(node, indices)
		} else {
			s.addStatement(node, indices)
		}
	}

	if nextBlock != nil {
		s.enterBlock(nextBlock)
	}

	return 1
}

func (s *state) popN(n int, indices *[]int) []AstNode {
	args := make([]AstNode, n)
	for i := n - 1; i >= 0; i-- {
		args[i] = s.popInto(indices)
	}
	return args
}

func asArgs(n AstNode) []AstNode {
	if lit, ok := n.(*Literal); ok {
		return lit.Elems
	}
	return nil
}

func (s *state) localHandlerName(idx int) string {
	if idx >= 0 && idx < len(s.chunk.Handlers) {
		return s.ctx.name(s.chunk.Handlers[idx].NameID)
	}
	return fmt.Sprintf("handler_%d", idx)
}

// readChunkRef pops the eight bound operands (first/last for char, word,
// item, line, innermost-first per spec.md §4.8) and nests the chunk
// constructors, omitting zero bounds.
func (s *state) readChunkRef(str AstNode, indices *[]int) AstNode {
	lastLine := s.popInto(indices)
	firstLine := s.popInto(indices)
	lastItem := s.popInto(indices)
	firstItem := s.popInto(indices)
	lastWord := s.popInto(indices)
	firstWord := s.popInto(indices)
	lastChar := s.popInto(indices)
	firstChar := s.popInto(indices)

	result := str
	if !isZero(firstLine) {
		result = &ChunkExpr{ChunkType: "line", First: firstLine, Last: lastLine, Of: result}
	}
	if !isZero(firstItem) {
		result = &ChunkExpr{ChunkType: "item", First: firstItem, Last: lastItem, Of: result}
	}
	if !isZero(firstWord) {
		result = &ChunkExpr{ChunkType: "word", First: firstWord, Last: lastWord, Of: result}
	}
	if !isZero(firstChar) {
		result = &ChunkExpr{ChunkType: "char", First: firstChar, Last: lastChar, Of: result}
	}
	return result
}

func isZero(n AstNode) bool {
	lit, ok := n.(*Literal)
	return ok && lit.Kind == DatumInt && lit.Int == 0
}

func (s *state) readVar(varType int64, indices *[]int) AstNode {
	return &Var{Name: fmt.Sprintf("var_%d", varType)}
}

// translateObjCall rewrites ObjCall's special-cased method names
// (getAt/setAt -> bracket index; hilite/delete -> chunk ops) per
// spec.md §4.8; anything else becomes a plain Call.
func (s *state) translateObjCall(method string, argList AstNode) AstNode {
	args := asArgs(argList)
	switch {
	case method == "getAt" && len(args) == 2:
		return &ObjBracket{Obj: args[0], Index: args[1]}
	case method == "setAt" && len(args) == 3:
		return &Assignment{Variable: &ObjBracket{Obj: args[0], Index: args[1]}, Value: args[2]}
	case method == "hilite" && len(args) == 1:
		return &ChunkHilite{Chunk: args[0]}
	case method == "delete" && len(args) == 1:
		return &ChunkDelete{Chunk: args[0]}
	default:
		return &Call{Name: method, Args: args}
	}
}

func (s *state) translateGet(op OpCode, obj int32, indices *[]int) (AstNode, bool) {
	switch op {
	case OpGetObjProp, OpGetChainedProp:
		object := s.popInto(indices)
		return &ObjProp{Obj: object, Prop: s.ctx.name(int64(obj))}, true
	case OpGetMovieProp:
		return &Var{Name: s.ctx.name(int64(obj))}, true
	default:
		index := s.popInto(indices)
		object := s.popInto(indices)
		return &ObjBracket{Obj: object, Index: index}, true
	}
}

func (s *state) translateSet(op OpCode, obj int32, indices *[]int) (AstNode, bool) {
	value := s.popInto(indices)
	switch op {
	case OpSetObjProp:
		object := s.popInto(indices)
		return &Assignment{Variable: &ObjProp{Obj: object, Prop: s.ctx.name(int64(obj))}, Value: value}, true
	case OpSetMovieProp:
		return &Assignment{Variable: &Var{Name: s.ctx.name(int64(obj))}, Value: value}, true
	default:
		index := s.popInto(indices)
		object := s.popInto(indices)
		return &Assignment{Variable: &ObjBracket{Obj: object, Index: index}, Value: value}, true
	}
}

// translatePut handles the three Put flavors (into/after/before) keyed by
// the high nibble of the operand, matching the original bit layout.
func (s *state) translatePut(obj int32, indices *[]int) (AstNode, bool) {
	kind := "into"
	switch (obj >> 4) & 0xF {
	case 1:
		kind = "after"
	case 2:
		kind = "before"
	}
	chunk := s.popInto(indices)
	value := s.popInto(indices)
	return &ChunkPut{Kind: kind, Value: value, Chunk: chunk}, true
}

func float32FromBits(bits int32) float64 {
	return float64(int32ToFloat32(bits))
}
