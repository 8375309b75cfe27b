// cpu.go - eZ80 register file, reset, and step/run loop

package ez80emu

import "fmt"

// Bus is the memory-and-IO surface the CPU talks to. A real bus decodes a
// 24-bit address across flash, RAM, and memory-mapped peripherals; the CPU
// itself only ever calls Read/Write/Tick plus the two interrupt queries.
type Bus interface {
	Read(addr uint32) byte
	Write(addr uint32, value byte)
	// IRQAsserted reports the interrupt controller's aggregated IRQ line.
	IRQAsserted() bool
	// IRQVector returns the vector byte placed on the bus during an IM 2
	// interrupt acknowledge cycle.
	IRQVector() byte
	Tick(cycles int)
}

// Flag bit positions within F, laid out S-Z-Y-H-X-P/V-N-C.
const (
	FlagC  byte = 0x01
	FlagN  byte = 0x02
	FlagPV byte = 0x04
	FlagX  byte = 0x08
	FlagH  byte = 0x10
	FlagY  byte = 0x20
	FlagZ  byte = 0x40
	FlagS  byte = 0x80
)

const (
	prefixNone byte = iota
	prefixDD
	prefixFD
)

// sizeOverride tracks a one-instruction SIS/LIS/SIL/LIL suffix that
// temporarily changes the addressing width independent of ADL.
type sizeOverride byte

const (
	overrideNone sizeOverride = iota
	overrideShortImmediateShortAddr
	overrideLongImmediateShortAddr
	overrideShortImmediateLongAddr
	overrideLongImmediateLongAddr
)

// CPU is the eZ80 register file and instruction engine. It is constructed
// with zero state via NewCPU and owned exclusively by the Emulator that
// embeds it; nothing else holds a persistent reference to it.
type CPU struct {
	A, F, B, C, D, E, H, L         byte
	A2, F2, B2, C2, D2, E2, H2, L2 byte

	// Upper bytes that, together with IX/IY/SP/PC/HL/DE/BC, form the 24-bit
	// ADL-mode registers UIX, UIY, USP, UHL, UDE, UBC. The low 16 bits are
	// stored in the fields below; IXU/IYU/HLU/DEU/BCU hold bits 16..23.
	IX, IY uint16
	IXU    byte
	IYU    byte
	HLU    byte
	DEU    byte
	BCU    byte

	SP  uint32 // 24-bit when ADL; low 16 bits significant otherwise
	PC  uint32
	SPU byte

	I  byte
	R  byte
	IM byte

	MBASE byte

	IFF1, IFF2 bool
	ADL        bool
	MADL       bool
	Halted     bool

	Cycles uint64

	bus Bus

	prefixMode byte // prefixDD/prefixFD while decoding an indexed instruction
	override   sizeOverride

	baseOps [256]func(*CPU)
	cbOps   [256]func(*CPU)
	edOps   [256]func(*CPU)
	ddOps   [256]func(*CPU)
	fdOps   [256]func(*CPU)

	logf func(string, ...any)
}

// NewCPU builds a CPU wired to bus, with all decode tables populated and
// registers at documented reset values.
func NewCPU(bus Bus) *CPU {
	c := &CPU{bus: bus}
	c.initBaseOps()
	c.initCBOps()
	c.initEDOps()
	c.initDDOps()
	c.initFDOps()
	c.Reset()
	return c
}

// SetLogCallback installs a best-effort diagnostic sink. A nil callback
// disables logging; it is never an error to omit one.
func (c *CPU) SetLogCallback(f func(string, ...any)) {
	c.logf = f
}

func (c *CPU) log(format string, args ...any) {
	if c.logf != nil {
		c.logf(format, args...)
	}
}

// Reset returns the CPU to its documented power-on state.
func (c *CPU) Reset() {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
	c.A2, c.F2, c.B2, c.C2, c.D2, c.E2, c.H2, c.L2 = 0, 0, 0, 0, 0, 0, 0, 0
	c.IX, c.IY = 0, 0
	c.IXU, c.IYU, c.HLU, c.DEU, c.BCU = 0, 0, 0, 0, 0
	c.SP, c.SPU = 0, 0
	c.PC = 0
	c.I, c.R, c.IM = 0, 0, 0
	c.MBASE = 0
	c.IFF1, c.IFF2 = false, false
	c.ADL = false
	c.MADL = false
	c.Halted = false
	c.Cycles = 0
	c.prefixMode = prefixNone
	c.override = overrideNone
}

// --- composed register accessors ---

func (c *CPU) AF() uint16  { return uint16(c.A)<<8 | uint16(c.F) }
func (c *CPU) BC() uint16  { return uint16(c.B)<<8 | uint16(c.C) }
func (c *CPU) DE() uint16  { return uint16(c.D)<<8 | uint16(c.E) }
func (c *CPU) HL() uint16  { return uint16(c.H)<<8 | uint16(c.L) }
func (c *CPU) AF2() uint16 { return uint16(c.A2)<<8 | uint16(c.F2) }
func (c *CPU) BC2() uint16 { return uint16(c.B2)<<8 | uint16(c.C2) }
func (c *CPU) DE2() uint16 { return uint16(c.D2)<<8 | uint16(c.E2) }
func (c *CPU) HL2() uint16 { return uint16(c.H2)<<8 | uint16(c.L2) }

func (c *CPU) SetAF(v uint16) { c.A, c.F = byte(v>>8), byte(v) }
func (c *CPU) SetBC(v uint16) { c.B, c.C = byte(v>>8), byte(v) }
func (c *CPU) SetDE(v uint16) { c.D, c.E = byte(v>>8), byte(v) }
func (c *CPU) SetHL(v uint16) { c.H, c.L = byte(v>>8), byte(v) }

// UBC/UDE/UHL/UIX/UIY are the 24-bit ADL-mode views of the register pairs.
func (c *CPU) UBC() uint32 { return uint32(c.BCU)<<16 | uint32(c.BC()) }
func (c *CPU) UDE() uint32 { return uint32(c.DEU)<<16 | uint32(c.DE()) }
func (c *CPU) UHL() uint32 { return uint32(c.HLU)<<16 | uint32(c.HL()) }
func (c *CPU) UIX() uint32 { return uint32(c.IXU)<<16 | uint32(c.IX) }
func (c *CPU) UIY() uint32 { return uint32(c.IYU)<<16 | uint32(c.IY) }
func (c *CPU) USP() uint32 { return uint32(c.SPU)<<16 | c.SP&0xFFFF }

func (c *CPU) SetUBC(v uint32) { c.BCU = byte(v >> 16); c.SetBC(uint16(v)) }
func (c *CPU) SetUDE(v uint32) { c.DEU = byte(v >> 16); c.SetDE(uint16(v)) }
func (c *CPU) SetUHL(v uint32) { c.HLU = byte(v >> 16); c.SetHL(uint16(v)) }
func (c *CPU) SetUIX(v uint32) { c.IXU = byte(v >> 16); c.IX = uint16(v) }
func (c *CPU) SetUIY(v uint32) { c.IYU = byte(v >> 16); c.IY = uint16(v) }
func (c *CPU) SetUSP(v uint32) { c.SPU = byte(v >> 16); c.SP = v & 0xFFFF }

func (c *CPU) Flag(mask byte) bool { return c.F&mask != 0 }

func (c *CPU) SetFlag(mask byte, on bool) {
	if on {
		c.F |= mask
	} else {
		c.F &^= mask
	}
}

func (c *CPU) ExAF() { c.A, c.A2 = c.A2, c.A; c.F, c.F2 = c.F2, c.F }

func (c *CPU) Exx() {
	c.B, c.B2 = c.B2, c.B
	c.C, c.C2 = c.C2, c.C
	c.D, c.D2 = c.D2, c.D
	c.E, c.E2 = c.E2, c.E
	c.H, c.H2 = c.H2, c.H
	c.L, c.L2 = c.L2, c.L
}

// --- address helpers ---

// longAddr reports whether the CPU is currently operating on 24-bit
// addresses: either true ADL mode, or a one-shot LIL/SIL override.
func (c *CPU) longAddr() bool {
	switch c.override {
	case overrideShortImmediateLongAddr, overrideLongImmediateLongAddr:
		return true
	case overrideShortImmediateShortAddr, overrideLongImmediateShortAddr:
		return false
	}
	return c.ADL
}

func (c *CPU) longImmediate() bool {
	switch c.override {
	case overrideLongImmediateShortAddr, overrideLongImmediateLongAddr:
		return true
	case overrideShortImmediateShortAddr, overrideShortImmediateLongAddr:
		return false
	}
	return c.ADL
}

// pcPhysical forms the 24-bit physical address for PC: the raw value when
// ADL=1, or MBASE:PC16 when ADL=0.
func (c *CPU) pcPhysical() uint32 {
	if c.ADL {
		return c.PC & 0xFFFFFF
	}
	return uint32(c.MBASE)<<16 | (c.PC & 0xFFFF)
}

func (c *CPU) advancePC(n uint32) {
	if c.ADL {
		c.PC = (c.PC + n) & 0xFFFFFF
	} else {
		c.PC = (c.PC&0xFFFF0000 | ((c.PC + n) & 0xFFFF))
	}
}

func (c *CPU) incrementR() {
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)
}

func (c *CPU) fetchOpcode() byte {
	v := c.bus.Read(c.pcPhysical())
	c.advancePC(1)
	c.incrementR()
	return v
}

func (c *CPU) fetchByte() byte {
	v := c.bus.Read(c.pcPhysical())
	c.advancePC(1)
	return v
}

func (c *CPU) fetchSignedByte() int8 {
	return int8(c.fetchByte())
}

func (c *CPU) fetchWord() uint16 {
	lo := c.fetchByte()
	hi := c.fetchByte()
	return uint16(hi)<<8 | uint16(lo)
}

// fetchAddr reads a 16 or 24-bit little-endian address immediate depending
// on the active addressing width (ADL or a LIL/SIL one-shot override).
func (c *CPU) fetchAddr() uint32 {
	if c.longImmediate() {
		lo := c.fetchByte()
		mid := c.fetchByte()
		hi := c.fetchByte()
		return uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
	}
	return uint32(c.fetchWord())
}

func (c *CPU) read(addr uint32) byte       { return c.bus.Read(addr & 0xFFFFFF) }
func (c *CPU) write(addr uint32, v byte)   { c.bus.Write(addr&0xFFFFFF, v) }
func (c *CPU) tick(cycles int)             { c.Cycles += uint64(cycles); c.bus.Tick(cycles) }

// PeekByte performs a bus read without any CPU-side effect, for external
// inspection (e.g. trace formatting). It never advances PC or R.
func (c *CPU) PeekByte(addr uint32) byte { return c.bus.Read(addr & 0xFFFFFF) }

// --- stack helpers, width-aware ---

func (c *CPU) pushByte(v byte) {
	if c.longAddr() {
		sp := (c.USP() - 1) & 0xFFFFFF
		c.SetUSP(sp)
		c.write(sp, v)
		return
	}
	sp := uint32(uint16(c.SP)-1) & 0xFFFF
	c.SP = sp
	c.write(uint32(c.MBASE)<<16|sp, v)
}

func (c *CPU) popByte() byte {
	if c.longAddr() {
		sp := c.USP()
		v := c.read(sp)
		c.SetUSP((sp + 1) & 0xFFFFFF)
		return v
	}
	sp := uint32(uint16(c.SP))
	v := c.read(uint32(c.MBASE)<<16 | sp)
	c.SP = (sp + 1) & 0xFFFF
	return v
}

func (c *CPU) pushWord(v uint16) {
	c.pushByte(byte(v >> 8))
	c.pushByte(byte(v))
}

func (c *CPU) popWord() uint16 {
	lo := c.popByte()
	hi := c.popByte()
	return uint16(hi)<<8 | uint16(lo)
}

// pushPC pushes PC as either a 2 or 3 byte value, per spec 4.1 interrupt
// acknowledgement: 3 bytes in ADL, 2 otherwise.
func (c *CPU) pushPC() {
	if c.ADL {
		c.pushByte(byte(c.PC >> 16))
		c.pushByte(byte(c.PC >> 8))
		c.pushByte(byte(c.PC))
	} else {
		c.pushWord(uint16(c.PC))
	}
}

func (c *CPU) popPC() {
	if c.ADL {
		lo := c.popByte()
		mid := c.popByte()
		hi := c.popByte()
		c.PC = uint32(hi)<<16 | uint32(mid)<<8 | uint32(lo)
	} else {
		c.PC = uint32(c.popWord())
	}
}

// Step executes exactly one instruction (or one HALT tick, or one interrupt
// acknowledge cycle) and returns the number of T-states it consumed.
func (c *CPU) Step() uint64 {
	before := c.Cycles

	if c.IFF1 && c.bus.IRQAsserted() && c.prefixMode == prefixNone {
		c.serviceInterrupt()
		return c.Cycles - before
	}

	if c.Halted {
		c.tick(4)
		return c.Cycles - before
	}

	opcode := c.fetchOpcode()
	c.override = overrideNone
	c.prefixMode = prefixNone
	c.dispatchBase(opcode)
	return c.Cycles - before
}

// dispatchBase executes one base-table opcode, threading through the
// CB/ED/DD/FD prefix tree as needed.
func (c *CPU) dispatchBase(opcode byte) {
	switch opcode {
	case 0xCB:
		sub := c.fetchOpcode()
		c.cbOps[sub](c)
	case 0xED:
		sub := c.fetchOpcode()
		c.edOps[sub](c)
	case 0xDD:
		c.prefixMode = prefixDD
		sub := c.fetchOpcode()
		if sub == 0xCB {
			c.execIndexedCB(true)
			return
		}
		c.ddOps[sub](c)
		c.prefixMode = prefixNone
	case 0xFD:
		c.prefixMode = prefixFD
		sub := c.fetchOpcode()
		if sub == 0xCB {
			c.execIndexedCB(false)
			return
		}
		c.fdOps[sub](c)
		c.prefixMode = prefixNone
	default:
		c.baseOps[opcode](c)
	}
}

// RunCycles executes instructions until at least n cycles have elapsed
// (honoring IRQ sampling at each instruction boundary), and returns the
// number of cycles actually executed. If the CPU halts with interrupts
// disabled, HALT stays set and PC unchanged while the clock keeps ticking
// 4 cycles at a time until the budget is consumed.
func (c *CPU) RunCycles(n uint64) uint64 {
	start := c.Cycles
	target := start + n
	for c.Cycles < target {
		if c.Halted && !c.IFF1 {
			c.tick(4)
			continue
		}
		c.Step()
	}
	return c.Cycles - start
}

// serviceInterrupt implements spec 4.1's maskable interrupt acknowledge:
// HALT clears, IFF1 clears (IFF2 retained), PC is pushed, and control
// transfers per the current interrupt mode.
func (c *CPU) serviceInterrupt() {
	wasHalted := c.Halted
	c.Halted = false
	c.IFF1 = false

	if wasHalted {
		c.advancePC(1)
	}

	c.pushPC()

	switch c.IM {
	case 0, 1:
		if c.ADL {
			c.PC = 0x000038
			c.tick(19)
		} else {
			c.PC = uint32(c.MBASE)<<16 | 0x38
			c.tick(13)
		}
	case 2:
		vector := c.bus.IRQVector()
		addr := uint32(c.I)<<8 | uint32(vector)
		lo := c.read(addr)
		hi := c.read(addr + 1)
		c.PC = uint32(c.MBASE)<<16 | uint32(hi)<<8 | uint32(lo)
		c.tick(19)
	default:
		panic(fmt.Sprintf("ez80emu: unreachable interrupt mode %d", c.IM))
	}
}
