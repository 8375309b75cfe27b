// emu.go - top-level Emulator: owns the CPU and every peripheral, wires
// them together through MemoryBus, and exposes the inspection surface spec
// 6 describes. Mirrors cpu_z80_runner.go's pattern of a runner struct that
// owns both the CPU and its bus adapter.

package ez80emu

// Emulator is the single owner of all emulated state; external callers
// reach it only through the accessors below, never by holding a peripheral
// reference directly (spec 9's "cyclic references" resolution).
type Emulator struct {
	cpu     *CPU
	bus     *MemoryBus
	control *ControlBlock
	intc    *InterruptController
	keypad  *Keypad
	panel   *Panel
	sha     *SHA256
}

// New builds an Emulator with every peripheral at its documented reset
// state and no ROM loaded.
func New() *Emulator {
	control := newControlBlock()
	intc := newInterruptController()
	keypad := newKeypad(intc)
	panel := newPanel()
	sha := newSHA256()
	bus := newMemoryBus(control, intc, keypad, panel, sha)
	cpu := NewCPU(bus)

	return &Emulator{
		cpu:     cpu,
		bus:     bus,
		control: control,
		intc:    intc,
		keypad:  keypad,
		panel:   panel,
		sha:     sha,
	}
}

// LoadROM copies image into flash space. It returns an error, leaving state
// untouched, if image is larger than flash.
func (e *Emulator) LoadROM(image []byte) error {
	return e.bus.loadROM(image)
}

// SetLogCallback installs a best-effort diagnostic sink shared by the CPU
// and the bus; a nil callback disables logging.
func (e *Emulator) SetLogCallback(f func(string, ...any)) {
	e.cpu.SetLogCallback(f)
	e.bus.setLogCallback(f)
}

// SetKey updates the pressed matrix; propagation to a row's data register
// happens on the keypad's next scan.
func (e *Emulator) SetKey(row, col int, down bool) {
	e.keypad.SetKey(row, col, down)
}

// Step executes exactly one instruction and returns the cycles it took.
func (e *Emulator) Step() uint64 { return e.cpu.Step() }

// RunCycles executes until at least n cycles have elapsed, returning the
// number actually executed; with HALT set and interrupts disabled it keeps
// ticking the clock until the budget is consumed.
func (e *Emulator) RunCycles(n uint64) uint64 { return e.cpu.RunCycles(n) }

// PeekByte performs a bus read without any observable peripheral side
// effect, for trace/debug inspection.
func (e *Emulator) PeekByte(addr uint32) byte { return e.cpu.PeekByte(addr) }

// ControlRead returns the last latched value of a control port.
func (e *Emulator) ControlRead(port uint32) byte { return e.control.Read(port) }

// --- register-file inspection, per spec 6 ---

func (e *Emulator) PC() uint32 { return e.cpu.PC }
func (e *Emulator) SP() uint32 {
	if e.cpu.ADL {
		return e.cpu.USP()
	}
	return e.cpu.SP
}

func (e *Emulator) A() byte { return e.cpu.A }
func (e *Emulator) F() byte { return e.cpu.F }
func (e *Emulator) B() byte { return e.cpu.B }
func (e *Emulator) C() byte { return e.cpu.C }
func (e *Emulator) D() byte { return e.cpu.D }
func (e *Emulator) E() byte { return e.cpu.E }
func (e *Emulator) H() byte { return e.cpu.H }
func (e *Emulator) L() byte { return e.cpu.L }

func (e *Emulator) AF() uint32 { return uint32(e.cpu.AF()) }

func (e *Emulator) BC() uint32 {
	if e.cpu.ADL {
		return e.cpu.UBC()
	}
	return uint32(e.cpu.BC())
}

func (e *Emulator) DE() uint32 {
	if e.cpu.ADL {
		return e.cpu.UDE()
	}
	return uint32(e.cpu.DE())
}

func (e *Emulator) HL() uint32 {
	if e.cpu.ADL {
		return e.cpu.UHL()
	}
	return uint32(e.cpu.HL())
}

func (e *Emulator) ADL() bool           { return e.cpu.ADL }
func (e *Emulator) MADL() bool          { return e.cpu.MADL }
func (e *Emulator) IFF1() bool          { return e.cpu.IFF1 }
func (e *Emulator) IFF2() bool          { return e.cpu.IFF2 }
func (e *Emulator) InterruptMode() byte { return e.cpu.IM }
func (e *Emulator) Halted() bool        { return e.cpu.Halted }
func (e *Emulator) Cycles() uint64      { return e.cpu.Cycles }

func (e *Emulator) InterruptRaw() uint32    { return e.intc.Raw() }
func (e *Emulator) InterruptEnable() uint32 { return e.intc.Enable() }
func (e *Emulator) InterruptStatus() uint32 { return e.intc.Status() }

// Snapshot captures the full inspection surface for one instruction,
// suitable for formatting into the trace line spec 6 describes.
func (e *Emulator) Snapshot(step uint64) Snapshot {
	pc := e.PC()
	return Snapshot{
		Step:          step,
		PC:            pc,
		SP:            e.SP(),
		AF:            uint16(e.AF()),
		BC:            e.BC(),
		DE:            e.DE(),
		HL:            e.HL(),
		IM:            e.cpu.IM,
		ADL:           e.ADL(),
		IFF1:          e.IFF1(),
		IFF2:          e.IFF2(),
		Halted:        e.Halted(),
		IntRaw:        e.InterruptRaw(),
		IntEnable:     e.InterruptEnable(),
		IntStatus:     e.InterruptStatus(),
		Power:         e.ControlRead(portPower),
		Speed:         e.ControlRead(portSpeed),
		ProtectUnlock: e.ControlRead(portProtect),
		FlashUnlock:   e.ControlRead(portFlashLock),
		Op: [4]byte{
			e.PeekByte(pc),
			e.PeekByte(pc + 1),
			e.PeekByte(pc + 2),
			e.PeekByte(pc + 3),
		},
	}
}
