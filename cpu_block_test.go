package ez80emu

import "testing"

func TestLDIRCopiesBlockAndClearsBC(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetHL(0x2000)
	rig.cpu.SetDE(0x3000)
	rig.cpu.SetBC(3)
	copy(rig.bus.mem[0x2000:], []byte{0xAA, 0xBB, 0xCC})
	rig.load(0x000000, []byte{0xED, 0xB0}) // LDIR

	for rig.cpu.BC() != 0 {
		rig.cpu.Step()
		rig.cpu.PC = 0x000000 // LDIR re-executes itself until BC==0
	}

	if rig.bus.mem[0x3000] != 0xAA || rig.bus.mem[0x3001] != 0xBB || rig.bus.mem[0x3002] != 0xCC {
		t.Fatalf("LDIR did not copy the expected bytes: %v", rig.bus.mem[0x3000:0x3003])
	}
	requireEqualU16(t, "HL after LDIR", rig.cpu.HL(), 0x2003)
	requireEqualU16(t, "DE after LDIR", rig.cpu.DE(), 0x3003)
}

func TestCPIRFindsMatchingByte(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.A = 0xCC
	rig.cpu.SetHL(0x2000)
	rig.cpu.SetBC(3)
	copy(rig.bus.mem[0x2000:], []byte{0xAA, 0xBB, 0xCC})
	rig.load(0x000000, []byte{0xED, 0xB1}) // CPIR

	for {
		rig.cpu.Step()
		if rig.cpu.Flag(FlagZ) || rig.cpu.BC() == 0 {
			break
		}
		rig.cpu.PC = 0x000000
	}

	if !rig.cpu.Flag(FlagZ) {
		t.Fatalf("CPIR should stop with Z set on a match")
	}
	requireEqualU16(t, "HL after CPIR match", rig.cpu.HL(), 0x2003)
}

func TestBlockIOTransfersThroughUnifiedBus(t *testing.T) {
	rig := newCPUTestRig()
	rig.cpu.SetBC(0x0110) // B=1 (count), C=0x10 (port)
	rig.cpu.SetHL(0x2000)
	rig.bus.mem[0x0110] = 0x5A // port reads go through the unified bus at the BC address
	rig.load(0x000000, []byte{0xED, 0xA2}) // INI

	rig.cpu.Step()
	requireEqualU8(t, "(HL) after INI", rig.bus.mem[0x2000], 0x5A)
	requireEqualU16(t, "HL after INI", rig.cpu.HL(), 0x2001)
	requireEqualU8(t, "B after INI", rig.cpu.B, 0)
	if !rig.cpu.Flag(FlagZ) {
		t.Fatalf("B reaching 0 should set Z")
	}
}
