package rulegen

import "errors"

// ErrArityMismatch reports a term or order sequence whose length does not
// match the target's arity or body length. Both construction and permutation
// failures wrap it; malformed input is a programmer error, not recoverable.
var ErrArityMismatch = errors.New("arity mismatch")
