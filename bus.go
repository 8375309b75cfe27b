// bus.go - 24-bit address space decode: flash, RAM (with a mirror alias),
// and memory-mapped device windows. Modeled on cpu_z80_runner.go's
// Z80BusAdapter, which resolves a flat address space by switching on
// range membership rather than a tree of nested bus objects.

package ez80emu

const (
	flashBase = 0x000000
	flashSize = 0x400000 // 4 MiB, generous upper bound for a CE ROM image

	ramBase       = 0xD00000
	ramSize       = 0x65800
	ramMirrorBase = 0xD80000 // aliases ramBase, modulo ramSize

	// Control block ports run up to the documented flash-unlock latch at
	// offset 0x28 (spec 4.3), so controlSize must cover at least that; the
	// interrupt controller's base is implementation-defined (spec 4.2) and
	// is placed just past the control block so the two windows stay
	// disjoint.
	controlBase = 0xF00000
	controlSize = 0x100

	intcBase = 0xF00100
	intcSize = 0x10

	keypadBase = 0xF50000
	keypadSize = 0x100

	panelBase = 0xF80000 // one-byte transfer port, low byte of a 9-bit frame
	panelHigh = 0xF80001 // bit 8 of the 9-bit frame (command/data select)

	sha256Base = 0xF02000
	sha256Size = 0x100
)

// capability is the small surface every memory-mapped device satisfies, per
// spec 9's "polymorphism over peripherals": no inheritance, just
// read/write. It has no tick method; MemoryBus.Tick drives the keypad's
// scan timer directly.
type capability interface {
	Read(addr uint32) byte
	Write(addr uint32, value byte)
}

// MemoryBus is the Emulator's 24-bit address space. It owns flash and RAM
// directly and routes device windows to the peripheral values the Emulator
// constructs it with.
type MemoryBus struct {
	flash []byte
	ram   []byte

	control *ControlBlock
	intc    *InterruptController
	keypad  *Keypad
	panel   *Panel
	sha     *SHA256

	panelCmdLatch byte // low byte of the frame, staged until the high bit lands

	logf func(string, ...any)
}

func newMemoryBus(control *ControlBlock, intc *InterruptController, keypad *Keypad, panel *Panel, sha *SHA256) *MemoryBus {
	return &MemoryBus{
		flash:   make([]byte, flashSize),
		ram:     make([]byte, ramSize),
		control: control,
		intc:    intc,
		keypad:  keypad,
		panel:   panel,
		sha:     sha,
	}
}

func (b *MemoryBus) setLogCallback(f func(string, ...any)) { b.logf = f }

func (b *MemoryBus) log(format string, args ...any) {
	if b.logf != nil {
		b.logf(format, args...)
	}
}

// loadROM copies image into flash space. It fails if image does not fit.
func (b *MemoryBus) loadROM(image []byte) error {
	if len(image) > len(b.flash) {
		return errROMTooLarge
	}
	for i := range b.flash {
		b.flash[i] = 0
	}
	copy(b.flash, image)
	return nil
}

func (b *MemoryBus) Read(addr uint32) byte {
	addr &= 0xFFFFFF
	switch {
	case addr >= flashBase && addr < flashBase+flashSize:
		return b.flash[addr-flashBase]
	case addr >= ramBase && addr < ramBase+ramSize:
		return b.ram[addr-ramBase]
	case addr >= ramMirrorBase && addr < ramMirrorBase+ramSize:
		return b.ram[(addr-ramMirrorBase)%ramSize]
	case addr >= controlBase && addr < controlBase+controlSize:
		return b.control.Read(addr - controlBase)
	case addr >= intcBase && addr < intcBase+intcSize:
		return b.intc.Read(addr - intcBase)
	case addr >= keypadBase && addr < keypadBase+keypadSize:
		return b.keypad.Read(addr - keypadBase)
	case addr >= sha256Base && addr < sha256Base+sha256Size:
		return b.sha.Read(addr - sha256Base)
	case addr == panelBase, addr == panelHigh:
		return 0
	default:
		return 0
	}
}

func (b *MemoryBus) Write(addr uint32, value byte) {
	addr &= 0xFFFFFF
	switch {
	case addr >= flashBase && addr < flashBase+flashSize:
		if b.control.FlashUnlocked() {
			b.flash[addr-flashBase] = value
		} else {
			b.log("flash write to %06X dropped, unlocked=false", addr)
		}
	case addr >= ramBase && addr < ramBase+ramSize:
		b.ram[addr-ramBase] = value
	case addr >= ramMirrorBase && addr < ramMirrorBase+ramSize:
		b.ram[(addr-ramMirrorBase)%ramSize] = value
	case addr >= controlBase && addr < controlBase+controlSize:
		b.control.Write(addr-controlBase, value)
	case addr >= intcBase && addr < intcBase+intcSize:
		b.intc.Write(addr-intcBase, value)
	case addr >= keypadBase && addr < keypadBase+keypadSize:
		b.keypad.Write(addr-keypadBase, value)
	case addr >= sha256Base && addr < sha256Base+sha256Size:
		b.sha.Write(addr-sha256Base, value)
	case addr == panelBase:
		b.panelCmdLatch = value
	case addr == panelHigh:
		frame := uint32(value&1)<<8 | uint32(b.panelCmdLatch)
		b.panel.Transfer(frame)
	default:
		b.log("write to unmapped address %06X dropped", addr)
	}
}

func (b *MemoryBus) IRQAsserted() bool { return b.intc.IRQAsserted() }
func (b *MemoryBus) IRQVector() byte   { return 0xFF } // spec 9 open question: assumed, unverified

func (b *MemoryBus) Tick(cycles int) {
	b.keypad.Tick(cycles)
}
