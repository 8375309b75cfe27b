package ez80emu

import "testing"

func TestALUSubCarryAndOverflow(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x000000, []byte{
		0x3E, 0x80, // LD A,0x80
		0xD6, 0x01, // SUB 1
	})
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x7F)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("signed overflow should set P/V for 0x80-1")
	}
	if rig.cpu.Flag(FlagC) {
		t.Fatalf("no borrow expected for 0x80-1")
	}
}

func TestALUAndSetsParityAndHalfCarry(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x000000, []byte{
		0x3E, 0x0F, // LD A,0x0F
		0xE6, 0x03, // AND 3 -> 0x03, parity even -> PV set
	})
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x03)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("AND result 0x03 has even parity, PV should be set")
	}
	if !rig.cpu.Flag(FlagH) {
		t.Fatalf("AND always sets H")
	}
}

func TestIncDecReg8OverflowFlags(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.A = 0x7F
	res := rig.cpu.incReg8(rig.cpu.A)
	requireEqualU8(t, "INC result", res, 0x80)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("INC 0x7F should set overflow")
	}

	rig.cpu.A = 0x80
	res = rig.cpu.decReg8(rig.cpu.A)
	requireEqualU8(t, "DEC result", res, 0x7F)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("DEC 0x80 should set overflow")
	}
}

func TestSCFCCFDeriveYXFromAccumulator(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.A = 0x28 // bits 5 and 3 set
	rig.cpu.F = 0
	rig.cpu.opSCF()
	if rig.cpu.F&(FlagX|FlagY) != FlagX|FlagY {
		t.Fatalf("SCF should take Y/X from A, got F=%02X", rig.cpu.F)
	}
	if !rig.cpu.Flag(FlagC) {
		t.Fatalf("SCF should set carry")
	}
	rig.cpu.opCCF()
	if rig.cpu.F&(FlagX|FlagY) != FlagX|FlagY {
		t.Fatalf("CCF should take Y/X from A, got F=%02X", rig.cpu.F)
	}
}

func TestDAAAfterBCDAdd(t *testing.T) {
	rig := newCPUTestRig()
	rig.load(0x000000, []byte{
		0x3E, 0x15, // LD A,0x15 (BCD 15)
		0xC6, 0x27, // ADD A,0x27 (BCD 27) -> binary 0x3C
		0x27, // DAA -> BCD 42
	})
	rig.cpu.Step()
	rig.cpu.Step()
	rig.cpu.Step()
	requireEqualU8(t, "A after DAA", rig.cpu.A, 0x42)
}

func TestAddHL16SetsCarryAndHalfCarry(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetHL(0xFFFF)
	res := rig.cpu.addHL16(rig.cpu.HL(), 1)
	requireEqualU16(t, "ADD HL,1 result", res, 0x0000)
	if !rig.cpu.Flag(FlagC) {
		t.Fatalf("carry out of bit 15 expected")
	}
	if !rig.cpu.Flag(FlagH) {
		t.Fatalf("half-carry out of bit 11 expected")
	}
}
