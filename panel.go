// panel.go - SPI-framed ST7789V panel stub, ported from
// original_source/core/src/peripherals/panel.rs's command/parameter state
// machine into Go (explicit FSM fields, table-free command dispatch via a
// switch).

package ez80emu

const (
	panelCmdNOP      = 0x00
	panelCmdSWRESET  = 0x01
	panelCmdSLPIN    = 0x10
	panelCmdSLPOUT   = 0x11
	panelCmdINVOFF   = 0x20
	panelCmdINVON    = 0x21
	panelCmdDISPOFF  = 0x28
	panelCmdDISPON   = 0x29
	panelCmdCASET    = 0x2A
	panelCmdRASET    = 0x2B
	panelCmdRAMWR    = 0x2C
	panelCmdMADCTL   = 0x36
	panelCmdRAMWRC   = 0x3C
	panelCmdCOLMOD   = 0x3A
	panelParamAbsorb = 0xFF
)

// Panel is the ST7789V command/parameter FSM described in spec 4.6/4.8:
// Idle (paramCount 0), AwaitingParams (paramIdx counts up to a known
// paramCount, which drops to 0 once reached), and AbsorbingData (paramCount
// pinned at 0xFF) are folded into the same struct, distinguished by
// paramCount's value.
type Panel struct {
	currentCmd byte
	paramIdx   byte
	paramCount byte

	sleeping   bool
	displayOn  bool
	inverted   bool
	madctl     byte
	colmod     byte
	caset      [4]byte
	raset      [4]byte
}

func newPanel() *Panel {
	p := &Panel{}
	p.Reset()
	return p
}

func (p *Panel) Reset() {
	*p = Panel{sleeping: true}
}

// Transfer processes one 9-bit SPI frame (bit 8 selects command vs data)
// and always returns the frame width, 9.
func (p *Panel) Transfer(frame uint32) byte {
	isData := frame&0x100 != 0
	b := byte(frame)
	if isData {
		p.writeParam(b)
	} else {
		p.writeCmd(b)
	}
	return 9
}

func (p *Panel) writeCmd(cmd byte) {
	p.currentCmd = cmd
	p.paramIdx = 0

	switch cmd {
	case panelCmdNOP, panelCmdSWRESET:
		p.paramCount = 0
	case panelCmdSLPIN:
		p.sleeping = true
		p.paramCount = 0
	case panelCmdSLPOUT:
		p.sleeping = false
		p.paramCount = 0
	case panelCmdINVOFF:
		p.inverted = false
		p.paramCount = 0
	case panelCmdINVON:
		p.inverted = true
		p.paramCount = 0
	case panelCmdDISPOFF:
		p.displayOn = false
		p.paramCount = 0
	case panelCmdDISPON:
		p.displayOn = true
		p.paramCount = 0
	case panelCmdCASET:
		p.paramCount = 4
	case panelCmdRASET:
		p.paramCount = 4
	case panelCmdMADCTL:
		p.paramCount = 1
	case panelCmdCOLMOD:
		p.paramCount = 1
	case panelCmdRAMWR, panelCmdRAMWRC:
		p.paramCount = panelParamAbsorb
	default:
		p.paramCount = panelParamAbsorb
	}

	if cmd == panelCmdSWRESET {
		p.Reset()
	}
}

func (p *Panel) writeParam(param byte) {
	if p.paramCount == 0 {
		return
	}

	switch p.currentCmd {
	case panelCmdCASET:
		if int(p.paramIdx) < len(p.caset) {
			p.caset[p.paramIdx] = param
		}
	case panelCmdRASET:
		if int(p.paramIdx) < len(p.raset) {
			p.raset[p.paramIdx] = param
		}
	case panelCmdMADCTL:
		p.madctl = param
	case panelCmdCOLMOD:
		p.colmod = param
	}

	p.paramIdx++
	if p.paramIdx >= p.paramCount && p.paramCount != panelParamAbsorb {
		p.paramCount = 0
	}
}

func (p *Panel) Sleeping() bool     { return p.sleeping }
func (p *Panel) DisplayOn() bool    { return p.displayOn }
func (p *Panel) Inverted() bool     { return p.inverted }
func (p *Panel) MADCTL() byte       { return p.madctl }
func (p *Panel) COLMOD() byte       { return p.colmod }
func (p *Panel) CASET() [4]byte     { return p.caset }
func (p *Panel) RASET() [4]byte     { return p.raset }
