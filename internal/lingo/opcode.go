// Package lingo reconstructs readable Lingo source from compiled handler
// bytecode: expressions are rebuilt from the operand stack, control flow
// (if/else, the three repeat-loop flavors, tell blocks) is recovered from
// jump tags, and the result carries a bytecode-index to output-line map for
// the debugger. It never executes Lingo and never compiles source back to
// bytecode — both are explicitly out of scope.
package lingo

// OpCode is a Lingo VM opcode as it appears in a compiled handler's
// bytecode array. Only the opcodes this decompiler recognizes are named;
// anything else falls through to the unknown-opcode recovery path in
// decompile.go.
type OpCode string

const (
	OpRet        OpCode = "Ret"
	OpRetFactory OpCode = "RetFactory"

	OpPushZero       OpCode = "PushZero"
	OpPushInt8       OpCode = "PushInt8"
	OpPushInt16      OpCode = "PushInt16"
	OpPushInt32      OpCode = "PushInt32"
	OpPushFloat32    OpCode = "PushFloat32"
	OpPushCons       OpCode = "PushCons"
	OpPushSymb       OpCode = "PushSymb"
	OpPushVarRef     OpCode = "PushVarRef"
	OpPushList       OpCode = "PushList"
	OpPushPropList   OpCode = "PushPropList"
	OpPushArgList    OpCode = "PushArgList"
	OpPushArgListNoRet OpCode = "PushArgListNoRet"
	OpPushChunkVarRef  OpCode = "PushChunkVarRef"

	OpMul          OpCode = "Mul"
	OpAdd          OpCode = "Add"
	OpSub          OpCode = "Sub"
	OpDiv          OpCode = "Div"
	OpMod          OpCode = "Mod"
	OpJoinStr      OpCode = "JoinStr"
	OpJoinPadStr   OpCode = "JoinPadStr"
	OpLt           OpCode = "Lt"
	OpLtEq         OpCode = "LtEq"
	OpNtEq         OpCode = "NtEq"
	OpEq           OpCode = "Eq"
	OpGt           OpCode = "Gt"
	OpGtEq         OpCode = "GtEq"
	OpAnd          OpCode = "And"
	OpOr           OpCode = "Or"
	OpContainsStr  OpCode = "ContainsStr"
	OpContains0Str OpCode = "Contains0Str"
	OpInv          OpCode = "Inv"
	OpNot          OpCode = "Not"

	OpGetChunk    OpCode = "GetChunk"
	OpPut         OpCode = "Put"
	OpPutChunk    OpCode = "PutChunk"
	OpHiliteChunk OpCode = "HiliteChunk"
	OpDeleteChunk OpCode = "DeleteChunk"

	OpOntoSpr OpCode = "OntoSpr"
	OpIntoSpr OpCode = "IntoSpr"
	OpGetField OpCode = "GetField"

	OpStartTell OpCode = "StartTell"
	OpEndTell   OpCode = "EndTell"

	OpSwap OpCode = "Swap"

	OpGetGlobal  OpCode = "GetGlobal"
	OpGetGlobal2 OpCode = "GetGlobal2"
	OpGetProp    OpCode = "GetProp"
	OpGetParam   OpCode = "GetParam"
	OpGetLocal   OpCode = "GetLocal"
	OpSetGlobal  OpCode = "SetGlobal"
	OpSetGlobal2 OpCode = "SetGlobal2"
	OpSetProp    OpCode = "SetProp"
	OpSetParam   OpCode = "SetParam"
	OpSetLocal   OpCode = "SetLocal"

	OpGetMovieProp  OpCode = "GetMovieProp"
	OpSetMovieProp  OpCode = "SetMovieProp"
	OpGetObjProp    OpCode = "GetObjProp"
	OpGetChainedProp OpCode = "GetChainedProp"
	OpSetObjProp    OpCode = "SetObjProp"
	OpGetTopLevelProp OpCode = "GetTopLevelProp"
	OpGet OpCode = "Get"
	OpSet OpCode = "Set"

	OpJmp      OpCode = "Jmp"
	OpJmpIfZ   OpCode = "JmpIfZ"
	OpEndRepeat OpCode = "EndRepeat"

	OpLocalCall OpCode = "LocalCall"
	OpExtCall   OpCode = "ExtCall"
	OpTellCall  OpCode = "TellCall"
	OpObjCall   OpCode = "ObjCall"
	OpObjCallV4 OpCode = "ObjCallV4"
	OpNewObj    OpCode = "NewObj"

	OpPeek OpCode = "Peek"
	OpPop  OpCode = "Pop"

	OpTheBuiltin OpCode = "TheBuiltin"
)

// setOpToGetOp mirrors the original decompiler's table used to verify the
// get/set pairing of a repeat-with-to/downto loop variable (§4.8 phase 1).
var setOpToGetOp = map[OpCode]OpCode{
	OpSetGlobal:  OpGetGlobal,
	OpSetGlobal2: OpGetGlobal2,
	OpSetProp:    OpGetProp,
	OpSetParam:   OpGetParam,
	OpSetLocal:   OpGetLocal,
}

func isVarSetOp(op OpCode) bool {
	_, ok := setOpToGetOp[op]
	return ok
}
