// cpu_index.go - DD/FD-table ops. Since IX and IY differ only in which
// register they touch, these read c.prefixMode at runtime rather than
// duplicating a function per index register (a generalization of
// cpu_z80.go's literal IX/IY-suffixed function pairs).

package ez80emu

func (c *CPU) indexed() bool { return c.prefixMode == prefixDD || c.prefixMode == prefixFD }

func (c *CPU) indexBase() uint32 {
	if c.prefixMode == prefixDD {
		return c.UIX()
	}
	return c.UIY()
}

func (c *CPU) setIndexBase(v uint32) {
	if c.prefixMode == prefixDD {
		c.SetUIX(v)
	} else {
		c.SetUIY(v)
	}
}

// indexAddr forms the effective address of (IX+d)/(IY+d).
func (c *CPU) indexAddr(disp int32) uint32 {
	base := c.indexBase()
	if c.ADL {
		return uint32(int64(base)+int64(disp)) & 0xFFFFFF
	}
	lo := uint16(int32(uint16(base)) + disp)
	return uint32(c.MBASE)<<16 | uint32(lo)
}

func (c *CPU) opLDIndexNN() {
	c.setIndexBase(c.fetchAddr())
	c.tick(14)
}

func (c *CPU) opLDNNMemIndex() {
	addr := c.effAddr(c.fetchWord(), 0)
	base := c.indexBase()
	c.write(addr, byte(base))
	c.write(addr+1, byte(base>>8))
	c.tick(20)
}

func (c *CPU) opLDIndexNNMem() {
	addr := c.effAddr(c.fetchWord(), 0)
	lo, hi := c.read(addr), c.read(addr+1)
	c.setIndexBase(uint32(hi)<<8 | uint32(lo))
	c.tick(20)
}

func (c *CPU) opPUSHIndex() { c.pushWord(uint16(c.indexBase())); c.tick(15) }
func (c *CPU) opPOPIndex()  { c.setIndexBase(uint32(c.popWord())); c.tick(14) }

func (c *CPU) opLDSPIndex() {
	c.SetUSP(c.indexBase())
	c.tick(10)
}

func (c *CPU) opJPIndex() { c.jumpTo(c.indexBase()); c.tick(8) }

func (c *CPU) opEXSPIndex() {
	addr := c.USPAddr()
	lo := c.read(addr)
	hi := c.read(addr + 1)
	base := c.indexBase()
	c.write(addr, byte(base))
	c.write(addr+1, byte(base>>8))
	c.setIndexBase(uint32(hi)<<8 | uint32(lo))
	c.tick(23)
}

func (c *CPU) opADDIndexBC() { c.addIndex16(c.BC()) }
func (c *CPU) opADDIndexDE() { c.addIndex16(c.DE()) }
func (c *CPU) opADDIndexIndex() {
	v := uint16(c.indexBase())
	c.addIndex16(v)
}
func (c *CPU) opADDIndexSP() { c.addIndex16(uint16(c.SP)) }

func (c *CPU) addIndex16(value uint16) {
	res := c.addHL16(uint16(c.indexBase()), value)
	c.setIndexBase(uint32(c.indexBase()&0xFFFF0000) | uint32(res))
	c.tick(15)
}

func (c *CPU) opINCIndex() { c.setIndexBase((c.indexBase() + 1) & 0xFFFFFF); c.tick(10) }
func (c *CPU) opDECIndex() { c.setIndexBase((c.indexBase() - 1) & 0xFFFFFF); c.tick(10) }

func (c *CPU) opLDRegIndexD(dest byte) {
	disp := int32(c.fetchSignedByte())
	v := c.read(c.indexAddr(disp))
	c.writeReg8(dest, v)
	c.tick(19)
}

func (c *CPU) opLDIndexDReg(src byte) {
	disp := int32(c.fetchSignedByte())
	c.write(c.indexAddr(disp), c.readReg8(src))
	c.tick(19)
}

func (c *CPU) opLDIndexDN() {
	disp := int32(c.fetchSignedByte())
	v := c.fetchByte()
	c.write(c.indexAddr(disp), v)
	c.tick(19)
}

func (c *CPU) opINCIndexD() {
	disp := int32(c.fetchSignedByte())
	addr := c.indexAddr(disp)
	c.write(addr, c.incReg8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opDECIndexD() {
	disp := int32(c.fetchSignedByte())
	addr := c.indexAddr(disp)
	c.write(addr, c.decReg8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opALUIndexD(op aluOp) {
	disp := int32(c.fetchSignedByte())
	v := c.read(c.indexAddr(disp))
	c.performALU(op, v)
	c.tick(19)
}

// --- eZ80 LEA/PEA: plain ED-table ops, one opcode per (dest, index)
// combination since nothing else in the encoding selects IX vs IY ---

// SetBC16/SetDE16/SetHL16 adapt the 16-bit setters to LEA's uint32 signature.
func (c *CPU) SetBC16(v uint32) { c.SetBC(uint16(v)) }
func (c *CPU) SetDE16(v uint32) { c.SetDE(uint16(v)) }
func (c *CPU) SetHL16(v uint32) { c.SetHL(uint16(v)) }

func (c *CPU) opLEABCIX() { c.opLEA(c.SetBC16, c.UIX()) }
func (c *CPU) opLEABCIY() { c.opLEA(c.SetBC16, c.UIY()) }
func (c *CPU) opLEADEIX() { c.opLEA(c.SetDE16, c.UIX()) }
func (c *CPU) opLEADEIY() { c.opLEA(c.SetDE16, c.UIY()) }
func (c *CPU) opLEAHLIX() { c.opLEA(c.SetHL16, c.UIX()) }
func (c *CPU) opLEAHLIY() { c.opLEA(c.SetHL16, c.UIY()) }

func (c *CPU) opPEAIX() { c.opPEA(c.UIX()) }
func (c *CPU) opPEAIY() { c.opPEA(c.UIY()) }
