package ez80emu

import "testing"

func TestSHA256InitialStateIsStandardIV(t *testing.T) {
	s := newSHA256()
	if s.state != sha256InitialState {
		t.Fatalf("initial state should be the standard SHA-256 IV")
	}
}

func TestSHA256QuickReadExposesState7(t *testing.T) {
	s := newSHA256()
	requireEqualU8(t, "quick read byte 0", s.Read(0x0C), 0x19)
	requireEqualU8(t, "quick read byte 1", s.Read(0x0D), 0xcd)
	requireEqualU8(t, "quick read byte 2", s.Read(0x0E), 0xe0)
	requireEqualU8(t, "quick read byte 3", s.Read(0x0F), 0x5b)
}

func TestSHA256ControlClearZeroesState(t *testing.T) {
	s := newSHA256()
	s.Write(sha256RegControl, 0x10)
	for i, w := range s.state {
		if w != 0 {
			t.Fatalf("state[%d] = %08X after clear, want 0", i, w)
		}
	}
}

func TestSHA256ControlReloadRestoresIV(t *testing.T) {
	s := newSHA256()
	s.Write(sha256RegControl, 0x10) // clear first
	s.Write(sha256RegControl, 0x0A) // reload IV
	if s.state != sha256InitialState {
		t.Fatalf("control write 0x0A should reload the standard IV")
	}
}

func TestSHA256BlockWindowIsWritable(t *testing.T) {
	s := newSHA256()
	s.Write(0x10, 0x78)
	s.Write(0x11, 0x56)
	s.Write(0x12, 0x34)
	s.Write(0x13, 0x12)
	if s.block[0] != 0x12345678 {
		t.Fatalf("block[0] = %08X, want 0x12345678", s.block[0])
	}
}

func TestSHA256StateWindowIsReadOnly(t *testing.T) {
	s := newSHA256()
	before := s.state
	s.Write(0x60, 0xFF)
	if s.state != before {
		t.Fatalf("writes into the state window should be ignored")
	}
}
