// cpu_tables.go - opcode table construction: one base table, one CB table,
// one ED table, and DD/FD override tables, generated with the same
// closure-over-range style as cpu_z80.go's initBaseOps/initCBOps/....
// Encodings not assigned here fall back to a documented NOP/pass-through,
// per spec 7.2 ("undefined opcodes execute as NOP") and 9 ("avoid an
// exception-for-control-flow illegal-opcode path").

package ez80emu

func (c *CPU) opUnimplemented() {
	c.log("unimplemented opcode %02X at PC %06X", c.bus.Read(c.pcPhysical()-1), c.pcPhysical()-1)
	c.tick(4)
}

func (c *CPU) initBaseOps() {
	for i := range c.baseOps {
		c.baseOps[i] = (*CPU).opUnimplemented
	}

	c.baseOps[0x00] = (*CPU).opNOP
	c.baseOps[0x76] = (*CPU).opHALT

	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		dest := byte((opcode >> 3) & 0x07)
		src := byte(opcode & 0x07)
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opLDRegReg(dest, src) }
	}

	ldRegImm := map[int]byte{0x06: 0, 0x0E: 1, 0x16: 2, 0x1E: 3, 0x26: 4, 0x2E: 5, 0x36: 6, 0x3E: 7}
	for opcode, reg := range ldRegImm {
		dest := reg
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opLDRegImm(dest) }
	}

	aluBase := []aluOp{aluAdd, aluAdc, aluSub, aluSbc, aluAnd, aluXor, aluOr, aluCp}
	for group, op := range aluBase {
		base := 0x80 + group*0x08
		aluOp := op
		for src := 0; src < 8; src++ {
			opcode := base + src
			reg := byte(src)
			c.baseOps[opcode] = func(cpu *CPU) {
				v := cpu.readReg8(reg)
				cpu.performALU(aluOp, v)
				if reg == 6 {
					cpu.tick(7)
				} else {
					cpu.tick(4)
				}
			}
		}
	}

	aluImm := map[int]aluOp{0xC6: aluAdd, 0xCE: aluAdc, 0xD6: aluSub, 0xDE: aluSbc, 0xE6: aluAnd, 0xEE: aluXor, 0xF6: aluOr, 0xFE: aluCp}
	for opcode, op := range aluImm {
		aluOp := op
		c.baseOps[opcode] = func(cpu *CPU) {
			v := cpu.fetchByte()
			cpu.performALU(aluOp, v)
			cpu.tick(7)
		}
	}

	incReg := map[int]byte{0x04: 0, 0x0C: 1, 0x14: 2, 0x1C: 3, 0x24: 4, 0x2C: 5, 0x34: 6, 0x3C: 7}
	for opcode, reg := range incReg {
		r := reg
		c.baseOps[opcode] = func(cpu *CPU) {
			cpu.writeReg8(r, cpu.incReg8(cpu.readReg8(r)))
			if r == 6 {
				cpu.tick(11)
			} else {
				cpu.tick(4)
			}
		}
	}
	decReg := map[int]byte{0x05: 0, 0x0D: 1, 0x15: 2, 0x1D: 3, 0x25: 4, 0x2D: 5, 0x35: 6, 0x3D: 7}
	for opcode, reg := range decReg {
		r := reg
		c.baseOps[opcode] = func(cpu *CPU) {
			cpu.writeReg8(r, cpu.decReg8(cpu.readReg8(r)))
			if r == 6 {
				cpu.tick(11)
			} else {
				cpu.tick(4)
			}
		}
	}

	c.baseOps[0x27] = (*CPU).opDAA
	c.baseOps[0x2F] = (*CPU).opCPL
	c.baseOps[0x37] = (*CPU).opSCF
	c.baseOps[0x3F] = (*CPU).opCCF
	c.baseOps[0x07] = (*CPU).opRLCA
	c.baseOps[0x0F] = (*CPU).opRRCA
	c.baseOps[0x17] = (*CPU).opRLA
	c.baseOps[0x1F] = (*CPU).opRRA

	c.baseOps[0x01] = (*CPU).opLDBCNN
	c.baseOps[0x11] = (*CPU).opLDDENN
	c.baseOps[0x21] = (*CPU).opLDHLImm
	c.baseOps[0x31] = (*CPU).opLDSPNN
	c.baseOps[0x22] = (*CPU).opLDNNMemHL
	c.baseOps[0x2A] = (*CPU).opLDHLNNMem
	c.baseOps[0x32] = (*CPU).opLDNNMemA
	c.baseOps[0x3A] = (*CPU).opLDANNMem

	c.baseOps[0x02] = func(cpu *CPU) { cpu.write(cpu.effAddrBC(), cpu.A); cpu.tick(7) }
	c.baseOps[0x12] = func(cpu *CPU) { cpu.write(cpu.effAddrDE(), cpu.A); cpu.tick(7) }
	c.baseOps[0x0A] = func(cpu *CPU) { cpu.A = cpu.read(cpu.effAddrBC()); cpu.tick(7) }
	c.baseOps[0x1A] = func(cpu *CPU) { cpu.A = cpu.read(cpu.effAddrDE()); cpu.tick(7) }

	c.baseOps[0x09] = func(cpu *CPU) { cpu.SetHL(cpu.addHL16(cpu.HL(), cpu.BC())); cpu.tick(11) }
	c.baseOps[0x19] = func(cpu *CPU) { cpu.SetHL(cpu.addHL16(cpu.HL(), cpu.DE())); cpu.tick(11) }
	c.baseOps[0x29] = func(cpu *CPU) { cpu.SetHL(cpu.addHL16(cpu.HL(), cpu.HL())); cpu.tick(11) }
	c.baseOps[0x39] = func(cpu *CPU) { cpu.SetHL(cpu.addHL16(cpu.HL(), uint16(cpu.SP))); cpu.tick(11) }

	inc16 := map[int]func(*CPU){
		0x03: func(cpu *CPU) { cpu.SetBC(cpu.BC() + 1) },
		0x13: func(cpu *CPU) { cpu.SetDE(cpu.DE() + 1) },
		0x23: func(cpu *CPU) { cpu.SetHL(cpu.HL() + 1) },
		0x33: func(cpu *CPU) { cpu.SP = (cpu.SP + 1) & 0xFFFFFF },
	}
	for opcode, fn := range inc16 {
		f := fn
		c.baseOps[opcode] = func(cpu *CPU) { f(cpu); cpu.tick(6) }
	}
	dec16 := map[int]func(*CPU){
		0x0B: func(cpu *CPU) { cpu.SetBC(cpu.BC() - 1) },
		0x1B: func(cpu *CPU) { cpu.SetDE(cpu.DE() - 1) },
		0x2B: func(cpu *CPU) { cpu.SetHL(cpu.HL() - 1) },
		0x3B: func(cpu *CPU) { cpu.SP = (cpu.SP - 1) & 0xFFFFFF },
	}
	for opcode, fn := range dec16 {
		f := fn
		c.baseOps[opcode] = func(cpu *CPU) { f(cpu); cpu.tick(6) }
	}

	c.baseOps[0x08] = (*CPU).opEXAFAF2
	c.baseOps[0xD9] = (*CPU).opEXX
	c.baseOps[0xEB] = (*CPU).opEXDEHL
	c.baseOps[0xE3] = (*CPU).opEXSPHL

	c.baseOps[0xC5] = (*CPU).opPUSHBC
	c.baseOps[0xD5] = (*CPU).opPUSHDE
	c.baseOps[0xE5] = (*CPU).opPUSHHL
	c.baseOps[0xF5] = (*CPU).opPUSHAF
	c.baseOps[0xC1] = (*CPU).opPOPBC
	c.baseOps[0xD1] = (*CPU).opPOPDE
	c.baseOps[0xE1] = (*CPU).opPOPHL
	c.baseOps[0xF1] = (*CPU).opPOPAF

	c.baseOps[0xC3] = (*CPU).opJPNN
	c.baseOps[0x18] = (*CPU).opJR
	c.baseOps[0x10] = (*CPU).opDJNZ
	c.baseOps[0xCD] = (*CPU).opCALLNN
	c.baseOps[0xC9] = (*CPU).opRET
	c.baseOps[0xE9] = (*CPU).opJPHL
	c.baseOps[0xF9] = func(cpu *CPU) { cpu.SetUSP(cpu.UHL()); cpu.tick(6) }
	c.baseOps[0xF3] = (*CPU).opDI
	c.baseOps[0xFB] = (*CPU).opEI

	jrCC := map[int]byte{0x20: 0, 0x28: 1, 0x30: 2, 0x38: 3}
	for opcode, cond := range jrCC {
		cc := cond
		c.baseOps[opcode] = func(cpu *CPU) { cpu.jrCond(cpu.testCond(cc)) }
	}

	condBase := map[byte]int{0: 0xC2, 1: 0xCA, 2: 0xD2, 3: 0xDA, 4: 0xE2, 5: 0xEA, 6: 0xF2, 7: 0xFA}
	for cc, base := range condBase {
		cond := cc
		c.baseOps[base] = func(cpu *CPU) { cpu.jpCond(cpu.testCond(cond)) }
	}
	callBase := map[byte]int{0: 0xC4, 1: 0xCC, 2: 0xD4, 3: 0xDC, 4: 0xE4, 5: 0xEC, 6: 0xF4, 7: 0xFC}
	for cc, base := range callBase {
		cond := cc
		c.baseOps[base] = func(cpu *CPU) { cpu.callCond(cpu.testCond(cond)) }
	}
	retBase := map[byte]int{0: 0xC0, 1: 0xC8, 2: 0xD0, 3: 0xD8, 4: 0xE0, 5: 0xE8, 6: 0xF0, 7: 0xF8}
	for cc, base := range retBase {
		cond := cc
		c.baseOps[base] = func(cpu *CPU) { cpu.retCond(cpu.testCond(cond)) }
	}

	rst := map[int]uint16{0xC7: 0x00, 0xCF: 0x08, 0xD7: 0x10, 0xDF: 0x18, 0xE7: 0x20, 0xEF: 0x28, 0xF7: 0x30, 0xFF: 0x38}
	for opcode, vector := range rst {
		v := vector
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opRST(v) }
	}

	c.baseOps[0xDB] = (*CPU).opINAN
	c.baseOps[0xD3] = (*CPU).opOUTNA
}

// testCond evaluates the standard 3-bit condition field: NZ Z NC C PO PE P M.
func (c *CPU) testCond(cc byte) bool {
	switch cc {
	case 0:
		return !c.Flag(FlagZ)
	case 1:
		return c.Flag(FlagZ)
	case 2:
		return !c.Flag(FlagC)
	case 3:
		return c.Flag(FlagC)
	case 4:
		return !c.Flag(FlagPV)
	case 5:
		return c.Flag(FlagPV)
	case 6:
		return !c.Flag(FlagS)
	case 7:
		return c.Flag(FlagS)
	}
	panic("ez80emu: unreachable condition code")
}

func (c *CPU) initCBOps() {
	for i := range c.cbOps {
		c.cbOps[i] = (*CPU).opUnimplemented
	}
	for opcode := 0x00; opcode <= 0x3F; opcode++ {
		group := byte(opcode>>3) & 0x07
		reg := byte(opcode) & 0x07
		c.cbOps[opcode] = func(cpu *CPU) { cpu.opCBRotateShift(group, reg) }
	}
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		bit := byte(opcode>>3) & 0x07
		reg := byte(opcode) & 0x07
		c.cbOps[opcode] = func(cpu *CPU) { cpu.opCBBIT(bit, reg) }
	}
	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		bit := byte(opcode>>3) & 0x07
		reg := byte(opcode) & 0x07
		c.cbOps[opcode] = func(cpu *CPU) { cpu.opCBRES(bit, reg) }
	}
	for opcode := 0xC0; opcode <= 0xFF; opcode++ {
		bit := byte(opcode>>3) & 0x07
		reg := byte(opcode) & 0x07
		c.cbOps[opcode] = func(cpu *CPU) { cpu.opCBSET(bit, reg) }
	}
}

func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*CPU).opUnimplemented
	}

	c.edOps[0x47] = (*CPU).opLDIA
	c.edOps[0x4F] = (*CPU).opLDRA
	c.edOps[0x57] = (*CPU).opLDAI
	c.edOps[0x5F] = (*CPU).opLDAR
	c.edOps[0x67] = (*CPU).opRRD
	c.edOps[0x6F] = (*CPU).opRLD
	c.edOps[0x44] = (*CPU).opNEG
	c.edOps[0x45] = (*CPU).opRETN
	c.edOps[0x4D] = (*CPU).opRETI

	c.edOps[0x46] = c.opIM(0)
	c.edOps[0x4E] = c.opIM(0)
	c.edOps[0x56] = c.opIM(1)
	c.edOps[0x5E] = c.opIM(2)

	c.edOps[0x4A] = (*CPU).opADCHLBC
	c.edOps[0x5A] = (*CPU).opADCHLDE
	c.edOps[0x6A] = (*CPU).opADCHLHL
	c.edOps[0x7A] = (*CPU).opADCHLSP
	c.edOps[0x42] = (*CPU).opSBCHLBC
	c.edOps[0x52] = (*CPU).opSBCHLDE
	c.edOps[0x62] = (*CPU).opSBCHLHL
	c.edOps[0x72] = (*CPU).opSBCHLSP

	c.edOps[0x43] = (*CPU).opLDNNMemBC
	c.edOps[0x53] = (*CPU).opLDNNMemDE
	c.edOps[0x73] = (*CPU).opLDNNMemSP
	c.edOps[0x4B] = (*CPU).opLDBCNNMem
	c.edOps[0x5B] = (*CPU).opLDDENNMem
	c.edOps[0x7B] = (*CPU).opLDSPNNMem

	c.edOps[0xA0] = (*CPU).opLDI
	c.edOps[0xA8] = (*CPU).opLDD
	c.edOps[0xB0] = (*CPU).opLDIR
	c.edOps[0xB8] = (*CPU).opLDDR
	c.edOps[0xA1] = (*CPU).opCPI
	c.edOps[0xA9] = (*CPU).opCPD
	c.edOps[0xB1] = (*CPU).opCPIR
	c.edOps[0xB9] = (*CPU).opCPDR
	c.edOps[0xA2] = (*CPU).opINI
	c.edOps[0xAA] = (*CPU).opIND
	c.edOps[0xB2] = (*CPU).opINIR
	c.edOps[0xBA] = (*CPU).opINDR
	c.edOps[0xA3] = (*CPU).opOUTI
	c.edOps[0xAB] = (*CPU).opOUTD
	c.edOps[0xB3] = (*CPU).opOTIR
	c.edOps[0xBB] = (*CPU).opOTDR

	for _, base := range []int{0x40, 0x48, 0x50, 0x58, 0x60, 0x68, 0x70, 0x78} {
		reg := byte((base >> 3) & 0x07)
		c.edOps[base] = func(cpu *CPU) { cpu.opINRegC(reg) }
		c.edOps[base+1] = func(cpu *CPU) { cpu.opOUTCReg(reg) }
	}

	// eZ80 extensions.
	c.edOps[0x4C] = (*CPU).opMLTBC
	c.edOps[0x5C] = (*CPU).opMLTDE
	c.edOps[0x6C] = (*CPU).opMLTHL
	c.edOps[0x7C] = (*CPU).opRSMIX
	c.edOps[0x7D] = (*CPU).opSTMIX
	c.edOps[0x02] = (*CPU).opLEABCIX
	c.edOps[0x03] = (*CPU).opLEABCIY
	c.edOps[0x12] = (*CPU).opLEADEIX
	c.edOps[0x13] = (*CPU).opLEADEIY
	c.edOps[0x22] = (*CPU).opLEAHLIX
	c.edOps[0x23] = (*CPU).opLEAHLIY
	c.edOps[0x64] = (*CPU).opPEAIX
	c.edOps[0x65] = (*CPU).opPEAIY

	c.edOps[0x40] = c.setSuffix(overrideShortImmediateShortAddr)
	c.edOps[0x49] = c.setSuffix(overrideLongImmediateShortAddr)
	c.edOps[0x52] = c.setSuffix(overrideShortImmediateLongAddr)
	c.edOps[0x5B] = c.setSuffix(overrideLongImmediateLongAddr)
}

func (c *CPU) ddFallback(opcode byte) {
	c.tick(4)
	c.baseOps[opcode](c)
}

func (c *CPU) initDDOps() { c.initIndexOps(&c.ddOps) }
func (c *CPU) initFDOps() { c.initIndexOps(&c.fdOps) }

// initIndexOps builds the DD and FD tables identically: the index-register
// selection happens at runtime via c.prefixMode (see cpu_index.go), so a
// single generator serves both prefixes.
func (c *CPU) initIndexOps(table *[256]func(*CPU)) {
	for i := range table {
		op := byte(i)
		table[i] = func(cpu *CPU) { cpu.ddFallback(op) }
	}

	table[0x21] = (*CPU).opLDIndexNN
	table[0x22] = (*CPU).opLDNNMemIndex
	table[0x2A] = (*CPU).opLDIndexNNMem
	table[0xE5] = (*CPU).opPUSHIndex
	table[0xE1] = (*CPU).opPOPIndex
	table[0xF9] = (*CPU).opLDSPIndex
	table[0x36] = (*CPU).opLDIndexDN
	table[0x34] = (*CPU).opINCIndexD
	table[0x35] = (*CPU).opDECIndexD
	table[0xE9] = (*CPU).opJPIndex
	table[0xE3] = (*CPU).opEXSPIndex
	table[0x09] = (*CPU).opADDIndexBC
	table[0x19] = (*CPU).opADDIndexDE
	table[0x29] = (*CPU).opADDIndexIndex
	table[0x39] = (*CPU).opADDIndexSP
	table[0x23] = (*CPU).opINCIndex
	table[0x2B] = (*CPU).opDECIndex

	for opcode := 0x46; opcode <= 0x7E; opcode += 8 {
		if opcode == 0x76 {
			continue
		}
		dest := byte((opcode >> 3) & 0x07)
		table[opcode] = func(cpu *CPU) { cpu.opLDRegIndexD(dest) }
	}
	for opcode := 0x70; opcode <= 0x77; opcode++ {
		if opcode == 0x76 {
			continue
		}
		src := byte(opcode & 0x07)
		table[opcode] = func(cpu *CPU) { cpu.opLDIndexDReg(src) }
	}
	aluBase := []aluOp{aluAdd, aluAdc, aluSub, aluSbc, aluAnd, aluXor, aluOr, aluCp}
	for group, op := range aluBase {
		opcode := 0x86 + group*0x08
		aluOp := op
		table[opcode] = func(cpu *CPU) { cpu.opALUIndexD(aluOp) }
	}
}
