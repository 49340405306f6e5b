package machine

import "github.com/ohaddr/vesper/lang/value"

// frame records one call to a user Function: its function (for the chunk
// and line table), an instruction cursor into that chunk, and slotBase,
// the value-stack index of this call's slot 0 (the callee itself; slots
// slotBase+1..slotBase+arity are the arguments).
type frame struct {
	fn       *value.Function
	ip       int
	slotBase int
}

// line returns the source line of the instruction the frame is currently
// executing, for diagnostics.
func (fr *frame) line() int {
	if fr.ip == 0 || fr.ip > len(fr.fn.Chunk.Lines) {
		return 0
	}
	return fr.fn.Chunk.Lines[fr.ip-1]
}

// name returns the frame's function name for a stack trace: "script" for
// the top-level program, matching the convention of frame.fn.Name == "".
func (fr *frame) name() string {
	if fr.fn.Name == "" {
		return "script"
	}
	return fr.fn.Name
}
