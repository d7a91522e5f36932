package lingo

import "math"

func int32ToFloat32(bits int32) float32 {
	return math.Float32frombits(uint32(bits))
}

// translateJmp handles an untagged Jmp: exit repeat (jumps just past an
// EndRepeat belonging to some loop), next repeat (jumps to a
// NextRepeatTarget), a then-block's trailing skip over an else branch
// (spliced in directly here), or the implicit end of an if-block with no
// else (falls through, nothing emitted).
func (s *state) translateJmp(index int, obj int32) (AstNode, bool) {
	ins := s.handler.Bytecode[index]
	targetPos := ins.Pos + int(obj)
	targetIdx, ok := s.posIdx[targetPos]
	if !ok {
		return &Comment{Text: "ERROR: invalid jump target"}, true
	}

	if targetIdx > 0 {
		prev := s.handler.Bytecode[targetIdx-1]
		if prev.Opcode == OpEndRepeat && s.tagger.tags[targetIdx-1].ownerLoop > 0 {
			return &ExitRepeat{}, true
		}
	}

	if s.tagger.tags[targetIdx].tag == TagNextRepeatTarget {
		return &NextRepeat{}, true
	}

	// A Jmp that is the last instruction before the current then-block's
	// natural close, but whose own target lies beyond that close, is the
	// compiler's skip-over-else: splice in the else branch in its place.
	if ifNode, owned := s.ifOwner[s.current]; owned {
		atBoundary := index+1 >= len(s.handler.Bytecode) || s.handler.Bytecode[index+1].Pos == s.current.EndPos
		if atBoundary && targetPos > s.current.EndPos {
			ifNode.Else = newBlock(targetPos)
			s.current = ifNode.Else
			return nil, false
		}
	}

	return nil, false
}

// translateJmpIfZ handles both the generic "if" form and the three
// loop-opening forms (per the tag assigned in Phase 1).
func (s *state) translateJmpIfZ(index int, obj int32, nextBlock **Block, indices *[]int) (AstNode, bool) {
	ins := s.handler.Bytecode[index]
	endPos := ins.Pos + int(obj)
	tag := s.tagger.tags[index].tag

	switch tag {
	case TagRepeatWhile:
		cond := s.popInto(indices)
		b := newBlock(endPos)
		*nextBlock = b
		return &RepeatWhile{Cond: cond, Body: b}, true

	case TagRepeatWithIn:
		list := s.popInto(indices)
		varName := s.varNameFromSet(index + 5)
		b := newBlock(endPos)
		*nextBlock = b
		return &RepeatWithIn{Var: varName, List: list, Body: b}, true

	case TagRepeatWithTo, TagRepeatWithDownTo:
		down := tag == TagRepeatWithDownTo
		end := s.popInto(indices)
		start := s.popInto(indices)

		endIdx, ok := s.posIdx[endPos]
		if !ok {
			endIdx = index
		}
		varName := "i"
		if endIdx > 0 {
			endRepeat := s.handler.Bytecode[endIdx-1]
			condPos := endRepeat.Pos - int(endRepeat.Operand)
			if condIdx, ok := s.posIdx[condPos]; ok && condIdx > 0 {
				varName = s.varNameFromSet(condIdx - 1)
			}
		}

		b := newBlock(endPos)
		*nextBlock = b
		return &RepeatWithTo{Var: varName, From: start, To: end, DownTo: down, Body: b}, true

	default:
		cond := s.popInto(indices)
		then := newBlock(endPos)
		*nextBlock = then
		ifNode := &If{Cond: cond, Then: then}
		s.ifOwner[then] = ifNode
		return ifNode, true
	}
}
