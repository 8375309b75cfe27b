// cpu_ed.go - ED-table extended ops: interrupt/refresh loads, RRD/RLD,
// 16-bit ADC/SBC and memory loads, block I/O, and the eZ80-specific
// extensions (MLT, STMIX/RSMIX, LEA, PEA, SIS/LIS/SIL/LIL).

package ez80emu

func (c *CPU) opLDIA() {
	c.I = c.A
	c.tick(9)
}

func (c *CPU) opLDRA() {
	c.R = c.A
	c.tick(9)
}

func (c *CPU) opLDAI() {
	c.A = c.I
	c.setIRFlags(c.A)
	c.tick(9)
}

func (c *CPU) opLDAR() {
	c.A = c.R
	c.setIRFlags(c.A)
	c.tick(9)
}

func (c *CPU) setIRFlags(v byte) {
	f := sz53Table[v] & (FlagS | FlagZ | FlagX | FlagY)
	if c.IFF2 {
		f |= FlagPV
	}
	c.F = f | c.F&FlagC
}

func (c *CPU) opRRD() {
	addr := c.effAddrHL()
	m := c.read(addr)
	a := c.A
	c.A = a&0xF0 | m&0x0F
	c.write(addr, (a<<4)|(m>>4))
	c.F = sz53pTable[c.A] | c.F&FlagC
	c.tick(18)
}

func (c *CPU) opRLD() {
	addr := c.effAddrHL()
	m := c.read(addr)
	a := c.A
	c.A = a&0xF0 | m>>4
	c.write(addr, (m<<4)|(a&0x0F))
	c.F = sz53pTable[c.A] | c.F&FlagC
	c.tick(18)
}

func (c *CPU) in(port uint16) byte  { return c.bus.Read(uint32(port)) }
func (c *CPU) out(port uint16, v byte) { c.bus.Write(uint32(port), v) }

func (c *CPU) opINRegC(reg byte) {
	v := c.in(c.BC())
	if reg != 6 {
		c.writeReg8(reg, v)
	}
	c.F = sz53pTable[v] | c.F&FlagC
	c.tick(12)
}

func (c *CPU) opOUTCReg(reg byte) {
	var v byte
	if reg == 6 {
		v = 0
	} else {
		v = c.readReg8(reg)
	}
	c.out(c.BC(), v)
	c.tick(12)
}

func (c *CPU) opADCHLBC() { c.SetHL(c.adcHL16(c.HL(), c.BC())); c.tick(15) }
func (c *CPU) opADCHLDE() { c.SetHL(c.adcHL16(c.HL(), c.DE())); c.tick(15) }
func (c *CPU) opADCHLHL() { c.SetHL(c.adcHL16(c.HL(), c.HL())); c.tick(15) }
func (c *CPU) opADCHLSP() { c.SetHL(c.adcHL16(c.HL(), uint16(c.SP))); c.tick(15) }

func (c *CPU) opSBCHLBC() { c.SetHL(c.sbcHL16(c.HL(), c.BC())); c.tick(15) }
func (c *CPU) opSBCHLDE() { c.SetHL(c.sbcHL16(c.HL(), c.DE())); c.tick(15) }
func (c *CPU) opSBCHLHL() { c.SetHL(c.sbcHL16(c.HL(), c.HL())); c.tick(15) }
func (c *CPU) opSBCHLSP() { c.SetHL(c.sbcHL16(c.HL(), uint16(c.SP))); c.tick(15) }

func (c *CPU) opLDNNMemBC() {
	addr := c.effAddr(c.fetchWord(), 0)
	c.write(addr, c.C)
	c.write(addr+1, c.B)
	c.tick(20)
}

func (c *CPU) opLDNNMemDE() {
	addr := c.effAddr(c.fetchWord(), 0)
	c.write(addr, c.E)
	c.write(addr+1, c.D)
	c.tick(20)
}

func (c *CPU) opLDNNMemSP() {
	addr := c.effAddr(c.fetchWord(), 0)
	c.write(addr, byte(c.SP))
	c.write(addr+1, byte(c.SP>>8))
	c.tick(20)
}

func (c *CPU) opLDBCNNMem() {
	addr := c.effAddr(c.fetchWord(), 0)
	lo, hi := c.read(addr), c.read(addr+1)
	c.SetBC(uint16(hi)<<8 | uint16(lo))
	c.tick(20)
}

func (c *CPU) opLDDENNMem() {
	addr := c.effAddr(c.fetchWord(), 0)
	lo, hi := c.read(addr), c.read(addr+1)
	c.SetDE(uint16(hi)<<8 | uint16(lo))
	c.tick(20)
}

func (c *CPU) opLDSPNNMem() {
	addr := c.effAddr(c.fetchWord(), 0)
	lo, hi := c.read(addr), c.read(addr+1)
	c.SP = uint32(uint16(hi)<<8 | uint16(lo))
	c.tick(20)
}

func (c *CPU) opIM(mode byte) func(*CPU) {
	return func(cpu *CPU) {
		cpu.IM = mode
		cpu.tick(8)
	}
}

// --- block I/O: port stays at BC, memory at HL, counted down in B ---

func (c *CPU) opINI() { c.blockIn(1) }
func (c *CPU) opIND() { c.blockIn(-1) }

func (c *CPU) opINIR() {
	c.blockIn(1)
	if c.B != 0 {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) opINDR() {
	c.blockIn(-1)
	if c.B != 0 {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) blockIn(step int) {
	v := c.in(c.BC())
	c.write(c.effAddrHL(), v)
	c.SetHL(uint16(int(c.HL()) + step))
	c.B--
	f := byte(FlagN)
	if c.B == 0 {
		f |= FlagZ
	}
	f |= c.B & (FlagX | FlagY) & sz53Table[c.B]
	c.F = f
	c.tick(16)
}

func (c *CPU) opOUTI() { c.blockOut(1) }
func (c *CPU) opOUTD() { c.blockOut(-1) }

func (c *CPU) opOTIR() {
	c.blockOut(1)
	if c.B != 0 {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) opOTDR() {
	c.blockOut(-1)
	if c.B != 0 {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) blockOut(step int) {
	v := c.read(c.effAddrHL())
	c.SetHL(uint16(int(c.HL()) + step))
	c.B--
	c.out(c.BC(), v)
	f := byte(FlagN)
	if c.B == 0 {
		f |= FlagZ
	}
	f |= sz53Table[c.B] & (FlagX | FlagY)
	c.F = f
	c.tick(16)
}

// --- eZ80-specific extensions ---

// opMLT* implement the eZ80 MLT rr instruction: unsigned multiply of the
// pair's two halves, result replacing the pair.
func (c *CPU) opMLTBC() { c.SetBC(uint16(c.B) * uint16(c.C)); c.tick(8) }
func (c *CPU) opMLTDE() { c.SetDE(uint16(c.D) * uint16(c.E)); c.tick(8) }
func (c *CPU) opMLTHL() { c.SetHL(uint16(c.H) * uint16(c.L)); c.tick(8) }

// STMIX/RSMIX set or clear MADL without touching ADL itself.
func (c *CPU) opSTMIX() { c.MADL = true; c.tick(8) }
func (c *CPU) opRSMIX() { c.MADL = false; c.tick(8) }

// opLEA loads dst with the sum of an index register and a signed
// displacement, without touching memory. The setters passed in write the
// low 16 bits only; the pair's upper (U) byte is left unchanged.
func (c *CPU) opLEA(setDst func(uint32), base uint32) {
	disp := int32(c.fetchSignedByte())
	setDst(uint32(int64(base)+int64(disp)) & 0xFFFFFF)
	c.tick(10)
}

func (c *CPU) opPEA(base uint32) {
	disp := int32(c.fetchSignedByte())
	v := uint32(int64(base)+int64(disp)) & 0xFFFFFF
	if c.ADL {
		c.pushByte(byte(v >> 16))
	}
	c.pushByte(byte(v >> 8))
	c.pushByte(byte(v))
	c.tick(14)
}

// setSuffix implements the one-instruction SIS/LIS/SIL/LIL address/data
// size override prefixes (spec 4.1 point 2). The override is consumed by
// the very next instruction's immediate fetch (fetchAddr) and stack
// helpers (pushByte/popByte) and reset at the start of the following step.
// effAddr, indexAddr, jumpTo and the PC width still follow ADL alone.
func (c *CPU) setSuffix(o sizeOverride) func(*CPU) {
	return func(cpu *CPU) {
		cpu.override = o
		cpu.tick(2)
		opcode := cpu.fetchOpcode()
		cpu.dispatchBase(opcode)
	}
}
