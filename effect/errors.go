package effect

import "errors"

// Graph construction errors. Build wraps these with the offending pass.
var (
	ErrNoPrimary         = errors.New("graph has no primary pass")
	ErrUnknownKey        = errors.New("unknown pass key")
	ErrDuplicateKey      = errors.New("duplicate pass key")
	ErrNoInputs          = errors.New("pass has no input bindings")
	ErrBindingOrder      = errors.New("invalid binding order")
	ErrBadTarget         = errors.New("invalid output target")
	ErrUnknownShader     = errors.New("unknown shader")
	ErrUnknownStateBlock = errors.New("unknown state block")
	ErrSamplerCount      = errors.New("more inputs than shader samplers")
	ErrPhaseOrder        = errors.New("pass runs before a pass it depends on")
	ErrCycle             = errors.New("dependency cycle")
	ErrDryShape          = errors.New("dry graph must be one pass with one input")
)
