// flags.go - precomputed S/Z/Y/X/parity tables for ALU flag computation
//
// Ported in spirit from oisee-z80-optimizer/pkg/cpu/flags.go (itself
// credited there to remogatto/z80): a table lookup is cheaper and clearer
// than re-deriving sign/zero/parity bit-by-bit at every ALU op.

package ez80emu

var (
	sz53Table   [256]byte
	sz53pTable  [256]byte
	parityTable [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		v := byte(i)
		sz53Table[i] = v & (FlagX | FlagY | FlagS)

		parity := byte(0)
		b := v
		for k := 0; k < 8; k++ {
			parity ^= b & 1
			b >>= 1
		}
		if parity == 0 {
			parityTable[i] = FlagPV
		}
		sz53pTable[i] = sz53Table[i] | parityTable[i]
	}
	sz53Table[0] |= FlagZ
	sz53pTable[0] |= FlagZ
}

func parity8(v byte) bool {
	return parityTable[v] != 0
}
