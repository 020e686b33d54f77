package renderer

import "errors"

// ErrUnresolved reports a shader, state block, texture or target that could
// not be resolved when a pass executed. The pass is skipped for that frame.
var ErrUnresolved = errors.New("unresolved resource")

// ErrBadState reports a state block whose declaration cannot be mapped to
// raylib render state.
var ErrBadState = errors.New("unsupported render state")
