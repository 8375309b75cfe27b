package ez80emu

import "testing"

func TestOpStringFormatsIndexedBitOpAsFourBytes(t *testing.T) {
	s := Snapshot{Op: [4]byte{0xDD, 0xCB, 0x01, 0x46}}
	if got, want := s.opString(), "DD CB 01 46"; got != want {
		t.Fatalf("opString() = %q, want %q", got, want)
	}
}

func TestOpStringFormatsEDPrefixedOpAsTwoBytes(t *testing.T) {
	s := Snapshot{Op: [4]byte{0xED, 0x52, 0x00, 0x00}}
	if got, want := s.opString(), "ED 52"; got != want {
		t.Fatalf("opString() = %q, want %q", got, want)
	}
}

func TestOpStringFormatsPlainOpcodeAsOneByte(t *testing.T) {
	s := Snapshot{Op: [4]byte{0x21, 0x00, 0x50, 0x00}}
	if got, want := s.opString(), "21"; got != want {
		t.Fatalf("opString() = %q, want %q", got, want)
	}
}

func TestOpStringFormatsFDPrefixedBitOpAsFourBytes(t *testing.T) {
	s := Snapshot{Op: [4]byte{0xFD, 0xCB, 0x02, 0x9E}}
	if got, want := s.opString(), "FD CB 02 9E"; got != want {
		t.Fatalf("opString() = %q, want %q", got, want)
	}
}

func TestFormatIncludesStepAndRegisterFields(t *testing.T) {
	s := Snapshot{Step: 7, PC: 0x1234, SP: 0xFFFE, AF: 0x0041, Op: [4]byte{0x00}}
	line := s.Format()
	if len(line) == 0 {
		t.Fatalf("Format() should not be empty")
	}
	if got, want := line[:len("[snapshot]")], "[snapshot]"; got != want {
		t.Fatalf("Format() should start with the snapshot tag, got %q", got)
	}
}
