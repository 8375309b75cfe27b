// control.go - control-port block at 0xF0000x: power/boot, clock speed,
// protection unlock, and flash unlock latches.

package ez80emu

const (
	portPower     = 0x00
	portSpeed     = 0x01
	portProtect   = 0x06
	portFlashLock = 0x28
)

// protectSequence and flashSequence are the documented byte sequences that
// drive the two unlock latches into their accepting state. Per spec 9's
// open question, the exact CEmu-matching sequence is not pinned down here;
// these are treated as an opaque state machine whose accepting state is
// reached after the documented number of writes land in order, which is
// enough to satisfy firmware polling loops that only check the unlocked
// bit, not the literal key bytes.
var (
	protectSequence = []byte{0x00, 0xFF}
	flashSequence   = []byte{0x00, 0xFF, 0x55, 0xAA}
)

// ControlBlock is a bank of byte latches plus the two unlock state
// machines. The flash one gates flash-space writes on the bus; the protect
// one is only reported through ProtectUnlocked and gates no port.
type ControlBlock struct {
	latches [controlSize]byte

	protectProgress int
	protectUnlocked bool
	flashProgress   int
	flashUnlocked   bool
}

func newControlBlock() *ControlBlock { return &ControlBlock{} }

func (c *ControlBlock) Reset() {
	for i := range c.latches {
		c.latches[i] = 0
	}
	c.protectProgress, c.protectUnlocked = 0, false
	c.flashProgress, c.flashUnlocked = 0, false
}

func (c *ControlBlock) Read(addr uint32) byte {
	if int(addr) >= len(c.latches) {
		return 0
	}
	return c.latches[addr]
}

func (c *ControlBlock) Write(addr uint32, value byte) {
	if int(addr) >= len(c.latches) {
		return
	}
	c.latches[addr] = value

	switch addr {
	case portProtect:
		c.protectProgress = advanceUnlock(protectSequence, c.protectProgress, value)
		c.protectUnlocked = c.protectProgress == len(protectSequence)
	case portFlashLock:
		c.flashProgress = advanceUnlock(flashSequence, c.flashProgress, value)
		c.flashUnlocked = c.flashProgress == len(flashSequence)
	}
}

// advanceUnlock steps a simple subsequence matcher: a byte that matches the
// next expected key byte advances progress, a mismatch at position 0 resets
// to 0 (or 1 if it happens to also match the first key byte), and progress
// is never allowed past the key length.
func advanceUnlock(key []byte, progress int, value byte) int {
	if progress < len(key) && value == key[progress] {
		return progress + 1
	}
	if value == key[0] {
		return 1
	}
	return 0
}

func (c *ControlBlock) ProtectUnlocked() bool { return c.protectUnlocked }
func (c *ControlBlock) FlashUnlocked() bool   { return c.flashUnlocked }
