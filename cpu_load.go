// cpu_load.go - register access helpers, 8/16-bit loads, exchanges, and
// the ED block transfer/compare groups (LDI/LDIR/LDD/LDDR/CPI/CPIR/...)

package ez80emu

// effAddr forms the 24-bit physical address for a 16-bit register pair:
// the ADL-mode upper byte when ADL=1, or MBASE:pair when ADL=0, per spec
// 3's "MBASE prefixes 16-bit operations when ADL=0" invariant.
func (c *CPU) effAddr(pair uint16, upper byte) uint32 {
	if c.ADL {
		return uint32(upper)<<16 | uint32(pair)
	}
	return uint32(c.MBASE)<<16 | uint32(pair)
}

func (c *CPU) effAddrHL() uint32 { return c.effAddr(c.HL(), c.HLU) }
func (c *CPU) effAddrDE() uint32 { return c.effAddr(c.DE(), c.DEU) }
func (c *CPU) effAddrBC() uint32 { return c.effAddr(c.BC(), c.BCU) }

// readReg8/writeReg8 decode the standard Z80 3-bit register field:
// B=0 C=1 D=2 E=3 H=4 L=5 (HL)=6 A=7. When a DD/FD prefix is active, H/L
// substitute for the index register half (IXH/IXL or IYH/IYL). Code 6
// always addresses (HL); the (IX+d)/(IY+d) forms have their own handlers in
// cpu_index.go and cpu_bits.go.
func (c *CPU) readReg8(code byte) byte {
	switch code {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.indexHigh()
	case 5:
		return c.indexLow()
	case 6:
		return c.read(c.effAddrHL())
	case 7:
		return c.A
	}
	panic("ez80emu: unreachable register code")
}

func (c *CPU) writeReg8(code byte, v byte) {
	switch code {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.setIndexHigh(v)
	case 5:
		c.setIndexLow(v)
	case 6:
		c.write(c.effAddrHL(), v)
	case 7:
		c.A = v
	default:
		panic("ez80emu: unreachable register code")
	}
}

func (c *CPU) indexHigh() byte {
	switch c.prefixMode {
	case prefixDD:
		return byte(c.IX >> 8)
	case prefixFD:
		return byte(c.IY >> 8)
	}
	return c.H
}

func (c *CPU) indexLow() byte {
	switch c.prefixMode {
	case prefixDD:
		return byte(c.IX)
	case prefixFD:
		return byte(c.IY)
	}
	return c.L
}

func (c *CPU) setIndexHigh(v byte) {
	switch c.prefixMode {
	case prefixDD:
		c.IX = uint16(v)<<8 | c.IX&0xFF
	case prefixFD:
		c.IY = uint16(v)<<8 | c.IY&0xFF
	default:
		c.H = v
	}
}

func (c *CPU) setIndexLow(v byte) {
	switch c.prefixMode {
	case prefixDD:
		c.IX = c.IX&0xFF00 | uint16(v)
	case prefixFD:
		c.IY = c.IY&0xFF00 | uint16(v)
	default:
		c.L = v
	}
}

func (c *CPU) opLDRegReg(dest, src byte) {
	v := c.readReg8(src)
	c.writeReg8(dest, v)
	if dest == 6 || src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opLDRegImm(dest byte) {
	v := c.fetchByte()
	c.writeReg8(dest, v)
	if dest == 6 {
		c.tick(10)
	} else {
		c.tick(7)
	}
}

func (c *CPU) opLDBCNN() { c.SetBC(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDDENN() { c.SetDE(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDHLImm() { c.SetHL(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDSPNN() {
	if c.ADL {
		c.SetUSP(c.fetchAddr())
	} else {
		c.SP = uint32(c.fetchWord())
	}
	c.tick(10)
}

func (c *CPU) opLDANNMem() {
	addr := c.effAddr(c.fetchWord(), 0)
	c.A = c.read(addr)
	c.tick(13)
}

func (c *CPU) opLDNNMemA() {
	addr := c.effAddr(c.fetchWord(), 0)
	c.write(addr, c.A)
	c.tick(13)
}

func (c *CPU) opLDHLNNMem() {
	addr := c.effAddr(c.fetchWord(), 0)
	lo := c.read(addr)
	hi := c.read(addr + 1)
	c.SetHL(uint16(hi)<<8 | uint16(lo))
	c.tick(16)
}

func (c *CPU) opLDNNMemHL() {
	addr := c.effAddr(c.fetchWord(), 0)
	c.write(addr, c.L)
	c.write(addr+1, c.H)
	c.tick(16)
}

func (c *CPU) opEXDEHL() {
	c.D, c.H = c.H, c.D
	c.E, c.L = c.L, c.E
	c.tick(4)
}

func (c *CPU) opEXAFAF2() { c.ExAF(); c.tick(4) }
func (c *CPU) opEXX()     { c.Exx(); c.tick(4) }

func (c *CPU) opEXSPHL() {
	addr := c.USPAddr()
	lo := c.read(addr)
	hi := c.read(addr + 1)
	c.write(addr, c.L)
	c.write(addr+1, c.H)
	c.SetHL(uint16(hi)<<8 | uint16(lo))
	c.tick(19)
}

// USPAddr is the physical address of the top of stack.
func (c *CPU) USPAddr() uint32 {
	if c.ADL {
		return c.USP()
	}
	return uint32(c.MBASE)<<16 | uint32(uint16(c.SP))
}

func (c *CPU) opPUSHBC() { c.pushWord(c.BC()); c.tick(11) }
func (c *CPU) opPUSHDE() { c.pushWord(c.DE()); c.tick(11) }
func (c *CPU) opPUSHHL() { c.pushWord(c.HL()); c.tick(11) }
func (c *CPU) opPUSHAF() { c.pushWord(c.AF()); c.tick(11) }

func (c *CPU) opPOPBC() { c.SetBC(c.popWord()); c.tick(10) }
func (c *CPU) opPOPDE() { c.SetDE(c.popWord()); c.tick(10) }
func (c *CPU) opPOPHL() { c.SetHL(c.popWord()); c.tick(10) }
func (c *CPU) opPOPAF() { c.SetAF(c.popWord()); c.tick(10) }

// --- block transfer/compare, ED table ---

func (c *CPU) opLDI() { c.blockCopy(1) }
func (c *CPU) opLDD() { c.blockCopy(-1) }

func (c *CPU) opLDIR() {
	c.blockCopy(1)
	if c.BC() != 0 {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) opLDDR() {
	c.blockCopy(-1)
	if c.BC() != 0 {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) blockCopy(step int) {
	v := c.read(c.effAddrHL())
	c.write(c.effAddrDE(), v)
	c.SetHL(uint16(int(c.HL()) + step))
	c.SetDE(uint16(int(c.DE()) + step))
	c.SetBC(c.BC() - 1)

	f := c.F & (FlagS | FlagZ | FlagC)
	n := c.A + v
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	if c.BC() != 0 {
		f |= FlagPV
	}
	c.F = f
	c.tick(16)
}

func (c *CPU) opCPI() { c.blockCompare(1) }
func (c *CPU) opCPD() { c.blockCompare(-1) }

func (c *CPU) opCPIR() {
	c.blockCompare(1)
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) opCPDR() {
	c.blockCompare(-1)
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.retreatPC(2)
		c.tick(5)
	}
}

func (c *CPU) blockCompare(step int) {
	a := c.A
	v := c.read(c.effAddrHL())
	res := a - v
	c.SetHL(uint16(int(c.HL()) + step))
	c.SetBC(c.BC() - 1)

	f := FlagN | sz53Table[res]&FlagS
	if res == 0 {
		f |= FlagZ
	}
	if int(a&0x0F)-int(v&0x0F) < 0 {
		f |= FlagH
	}
	n := res
	if f&FlagH != 0 {
		n--
	}
	if n&0x02 != 0 {
		f |= FlagY
	}
	if n&0x08 != 0 {
		f |= FlagX
	}
	if c.BC() != 0 {
		f |= FlagPV
	}
	c.F = f | c.F&FlagC
	c.tick(16)
}

// retreatPC steps PC back by n, used by the repeating block ops to loop.
func (c *CPU) retreatPC(n uint32) {
	if c.ADL {
		c.PC = (c.PC - n) & 0xFFFFFF
	} else {
		c.PC = c.PC&0xFFFF0000 | ((c.PC - n) & 0xFFFF)
	}
}
