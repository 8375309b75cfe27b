// trace.go - per-instruction snapshot and its formatted trace line, ported
// from original_source/core/examples/clean_trace.rs's CEmu-compatible
// format: every field the reference-comparison harness checks, plus the
// opcode-length formatting rule from spec 6.

package ez80emu

import "fmt"

// Snapshot is the full inspection surface for one instruction.
type Snapshot struct {
	Step uint64
	PC   uint32
	SP   uint32
	AF   uint16
	BC   uint32
	DE   uint32
	HL   uint32

	IM     byte
	ADL    bool
	IFF1   bool
	IFF2   bool
	Halted bool

	IntRaw    uint32
	IntEnable uint32
	IntStatus uint32

	Power         byte
	Speed         byte
	ProtectUnlock byte
	FlashUnlock   byte

	Op [4]byte
}

// opString applies spec 6's opcode formatting rule: DD/FD followed by CB
// emits 4 hex bytes; DD/FD/ED/CB alone emits 2; anything else emits 1.
func (s Snapshot) opString() string {
	b0, b1 := s.Op[0], s.Op[1]
	switch {
	case (b0 == 0xDD || b0 == 0xFD) && b1 == 0xCB:
		return fmt.Sprintf("%02X %02X %02X %02X", s.Op[0], s.Op[1], s.Op[2], s.Op[3])
	case b0 == 0xDD || b0 == 0xFD || b0 == 0xED || b0 == 0xCB:
		return fmt.Sprintf("%02X %02X", s.Op[0], s.Op[1])
	default:
		return fmt.Sprintf("%02X", s.Op[0])
	}
}

// Format renders the snapshot as one CEmu-style trace line.
func (s Snapshot) Format() string {
	return fmt.Sprintf(
		"[snapshot] step=%d PC=%06X SP=%06X AF=%04X BC=%06X DE=%06X HL=%06X "+
			"IM=%d ADL=%t IFF1=%t IFF2=%t HALT=%t "+
			"INTR[stat=%06X en=%06X raw=%06X] "+
			"CTRL[pwr=%02X spd=%02X unlock=%02X flash=%02X] op=%s",
		s.Step, s.PC, s.SP, s.AF, s.BC, s.DE, s.HL,
		s.IM, s.ADL, s.IFF1, s.IFF2, s.Halted,
		s.IntStatus&0x3FFFFF, s.IntEnable&0x3FFFFF, s.IntRaw&0x3FFFFF,
		s.Power, s.Speed, s.ProtectUnlock, s.FlashUnlock, s.opString(),
	)
}
