// cpu_jump.go - control flow: JP/JR/CALL/RET/RST, DJNZ, HALT, DI/EI,
// and the interrupt-return forms RETN/RETI.

package ez80emu

func (c *CPU) opNOP() { c.tick(4) }

// opHALT pins PC so that subsequent fetches keep re-executing the HALT
// opcode until an interrupt wakes the CPU, per spec 4.1.
func (c *CPU) opHALT() {
	c.Halted = true
	c.retreatPC(1)
	c.tick(4)
}

func (c *CPU) opDI() { c.IFF1, c.IFF2 = false, false; c.tick(4) }
func (c *CPU) opEI() { c.IFF1, c.IFF2 = true, true; c.tick(4) }

func (c *CPU) opJPNN() {
	addr := c.fetchAddr()
	c.jumpTo(addr)
	c.tick(10)
}

func (c *CPU) jumpTo(addr uint32) {
	if c.ADL {
		c.PC = addr & 0xFFFFFF
	} else {
		c.PC = c.PC&0xFFFF0000 | (addr & 0xFFFF)
		c.MBASE = byte(addr >> 16)
	}
}

func (c *CPU) opJR() {
	disp := c.fetchSignedByte()
	if c.ADL {
		c.PC = uint32(int32(c.PC)+int32(disp)) & 0xFFFFFF
	} else {
		lo := uint16(int32(uint16(c.PC)) + int32(disp))
		c.PC = c.PC&0xFFFF0000 | uint32(lo)
	}
	c.tick(12)
}

// jrCond performs a relative jump when cond holds.
func (c *CPU) jrCond(cond bool) {
	disp := c.fetchSignedByte()
	if cond {
		if c.ADL {
			c.PC = uint32(int32(c.PC)+int32(disp)) & 0xFFFFFF
		} else {
			lo := uint16(int32(uint16(c.PC)) + int32(disp))
			c.PC = c.PC&0xFFFF0000 | uint32(lo)
		}
		c.tick(12)
	} else {
		c.tick(7)
	}
}

func (c *CPU) opDJNZ() {
	disp := c.fetchSignedByte()
	c.B--
	if c.B != 0 {
		if c.ADL {
			c.PC = uint32(int32(c.PC)+int32(disp)) & 0xFFFFFF
		} else {
			lo := uint16(int32(uint16(c.PC)) + int32(disp))
			c.PC = c.PC&0xFFFF0000 | uint32(lo)
		}
		c.tick(13)
	} else {
		c.tick(8)
	}
}

func (c *CPU) jpCond(cond bool) {
	addr := c.fetchAddr()
	if cond {
		c.jumpTo(addr)
	}
	c.tick(10)
}

func (c *CPU) callCond(cond bool) {
	addr := c.fetchAddr()
	if cond {
		c.pushPC()
		c.jumpTo(addr)
		c.tick(17)
	} else {
		c.tick(10)
	}
}

func (c *CPU) opCALLNN() {
	addr := c.fetchAddr()
	c.pushPC()
	c.jumpTo(addr)
	c.tick(17)
}

func (c *CPU) retCond(cond bool) {
	if cond {
		c.popPC()
		c.tick(11)
	} else {
		c.tick(5)
	}
}

func (c *CPU) opRET() {
	c.popPC()
	c.tick(10)
}

func (c *CPU) opJPHL() { c.jumpTo(c.effAddrHL()); c.tick(4) }
func (c *CPU) opJPIX() { c.jumpTo(c.UIX()); c.tick(8) }
func (c *CPU) opJPIY() { c.jumpTo(c.UIY()); c.tick(8) }

func (c *CPU) opRST(vector uint16) {
	c.pushPC()
	c.jumpTo(uint32(c.MBASE)<<16 | uint32(vector))
	c.tick(11)
}

// RETN/RETI restore IFF1 from IFF2 and return. Interrupt entry pushes PC
// only, with no mode byte whatever MADL holds, and there is no RETIL, so
// neither form changes ADL.
func (c *CPU) opRETN() {
	c.IFF1 = c.IFF2
	c.popPC()
	c.tick(14)
}

func (c *CPU) opRETI() {
	c.IFF1 = c.IFF2
	c.popPC()
	c.tick(14)
}
