// errors.go - configuration-boundary errors. Per spec 7, these are the
// only kind reported to the caller; invalid guest behavior is absorbed
// silently and internal inconsistency panics rather than returning an error.

package ez80emu

import "errors"

var errROMTooLarge = errors.New("ez80emu: rom image larger than flash")
