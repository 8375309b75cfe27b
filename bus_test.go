package ez80emu

import "testing"

func newTestBus() *MemoryBus {
	control := newControlBlock()
	intc := newInterruptController()
	keypad := newKeypad(intc)
	panel := newPanel()
	sha := newSHA256()
	return newMemoryBus(control, intc, keypad, panel, sha)
}

func TestLoadROMRoundTrips(t *testing.T) {
	b := newTestBus()
	image := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	if err := b.loadROM(image); err != nil {
		t.Fatalf("loadROM: %v", err)
	}
	for i, v := range image {
		if got := b.Read(uint32(i)); got != v {
			t.Fatalf("flash[%d] = %02X, want %02X", i, got, v)
		}
	}
}

func TestLoadROMTooLargeReturnsError(t *testing.T) {
	b := newTestBus()
	if err := b.loadROM(make([]byte, flashSize+1)); err == nil {
		t.Fatalf("expected an error for an oversized ROM image")
	}
}

func TestFlashWritesDroppedWithoutUnlock(t *testing.T) {
	b := newTestBus()
	b.Write(0x1000, 0x42)
	if got := b.Read(0x1000); got != 0 {
		t.Fatalf("flash write without unlock should be dropped, read back %02X", got)
	}
}

func TestRAMMirrorAliasesPrimaryRAM(t *testing.T) {
	b := newTestBus()
	b.Write(ramBase+5, 0x77)
	if got := b.Read(ramMirrorBase + 5); got != 0x77 {
		t.Fatalf("RAM mirror should alias primary RAM, got %02X", got)
	}
}

func TestUnmappedReadsReturnZero(t *testing.T) {
	b := newTestBus()
	if got := b.Read(0xFFFFFF); got != 0 {
		t.Fatalf("unmapped read should return 0, got %02X", got)
	}
}

func TestPanelTransferThroughSPIWindow(t *testing.T) {
	b := newTestBus()
	b.Write(panelBase, 0x01) // SWRESET, low byte of frame
	b.Write(panelHigh, 0)    // bit 8 = 0 (command)
	if !b.panel.Sleeping() {
		t.Fatalf("SWRESET should leave the panel sleeping")
	}
}

func TestInterruptControllerWindowDoesNotOverlapControlBlock(t *testing.T) {
	b := newTestBus()
	b.Write(intcBase+intcRegEnable, 0xFF)
	b.intc.Raise(2)
	if got := b.Read(intcBase + intcRegStatus); got != 1<<2 {
		t.Fatalf("interrupt status read through the bus = %02X, want %02X", got, 1<<2)
	}
	// a control-block port far enough to have tripped the old overlapping
	// range must still read back through ControlBlock, unaffected.
	b.Write(controlBase+portFlashLock, 0x11)
	if got := b.Read(controlBase + portFlashLock); got != 0x11 {
		t.Fatalf("control latch read through the bus = %02X, want 0x11", got)
	}
}
