package cpu

import "errors"

// Fatal errors halt the surrounding block immediately (spec error handling:
// decode/addressing/resolution errors are all fatal). Arithmetic saturation
// and unknown opcodes are never returned as errors — they are non-fatal and
// only visible through trace.Event.Error.
var (
	ErrUnknownCallMode  = errors.New("cpu: unknown CALL mode")
	ErrMissingNameHash  = errors.New("cpu: CALL LIB_NAME missing namehash immediate")
	ErrMissingPBAddr    = errors.New("cpu: CALL PB missing PB address immediate")
	ErrNegativeAddress  = errors.New("cpu: negative address")
	ErrEOF              = errors.New("cpu: end of tape")
)
