package ez80emu

import "testing"

func TestIndexedLoadAndStoreWithDisplacement(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetUIX(0x3000)
	rig.bus.mem[0x3005] = 0x99
	rig.load(0x000000, []byte{0xDD, 0x7E, 0x05}) // LD A,(IX+5)
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x99)
}

func TestIndexedIncDecMemory(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetUIX(0x3000)
	rig.bus.mem[0x3002] = 0x7F
	rig.load(0x000000, []byte{0xDD, 0x34, 0x02}) // INC (IX+2)
	rig.cpu.Step()
	requireEqualU8(t, "(IX+2)", rig.bus.mem[0x3002], 0x80)
	if !rig.cpu.Flag(FlagPV) {
		t.Fatalf("INC 0x7F should set overflow")
	}
}

func TestIYSubstitutesWithFDPrefix(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetUIY(0x4000)
	rig.load(0x000000, []byte{0xFD, 0x21, 0x00, 0x50}) // LD IY,0x5000
	rig.cpu.Step()
	requireEqualU16(t, "IY low 16", uint16(rig.cpu.UIY()), 0x5000)
}

func TestIndexRegisterHalvesSubstituteForHL(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.IX = 0x1234
	rig.load(0x000000, []byte{0xDD, 0x7C}) // LD A,IXH
	rig.cpu.Step()
	requireEqualU8(t, "A", rig.cpu.A, 0x12)
}

func TestADDIndexPairPreservesUpperByte(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetUIX(0x123456)
	rig.cpu.SetBC(0x0001)
	rig.load(0x000000, []byte{0xDD, 0x09}) // ADD IX,BC
	rig.cpu.Step()
	if rig.cpu.UIX()&0xFF0000 != 0x120000 {
		t.Fatalf("ADD IX,BC should not touch the ADL upper byte, got %06X", rig.cpu.UIX())
	}
	requireEqualU16(t, "IX low 16 after ADD", rig.cpu.IX, 0x3457)
}
