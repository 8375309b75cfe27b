package ez80emu

import "testing"

func TestControlFlashUnlockSequenceGatesFlashWrites(t *testing.T) {
	c := newControlBlock()
	if c.FlashUnlocked() {
		t.Fatalf("flash should start locked")
	}
	for _, b := range flashSequence {
		c.Write(portFlashLock, b)
	}
	if !c.FlashUnlocked() {
		t.Fatalf("writing the documented flash-unlock sequence should unlock flash")
	}
}

func TestControlProtectUnlockSequenceSetsProtectUnlocked(t *testing.T) {
	c := newControlBlock()
	for _, b := range protectSequence {
		c.Write(portProtect, b)
	}
	if !c.ProtectUnlocked() {
		t.Fatalf("writing the documented protect-unlock sequence should set the protect-unlocked state")
	}
}

func TestControlWrongByteResetsUnlockProgress(t *testing.T) {
	c := newControlBlock()
	c.Write(portFlashLock, flashSequence[0])
	c.Write(portFlashLock, 0x77) // wrong next byte
	c.Write(portFlashLock, flashSequence[1])
	c.Write(portFlashLock, flashSequence[2])
	c.Write(portFlashLock, flashSequence[3])
	if c.FlashUnlocked() {
		t.Fatalf("an interrupted sequence should not unlock flash")
	}
}

func TestControlLatchesReflectLastWrittenByte(t *testing.T) {
	c := newControlBlock()
	c.Write(portSpeed, 0x42)
	requireEqualU8(t, "speed latch", c.Read(portSpeed), 0x42)
}

func TestControlResetClearsLatchesAndUnlocks(t *testing.T) {
	c := newControlBlock()
	for _, b := range flashSequence {
		c.Write(portFlashLock, b)
	}
	c.Reset()
	if c.FlashUnlocked() {
		t.Fatalf("Reset should relock flash")
	}
	requireEqualU8(t, "power latch after reset", c.Read(portPower), 0)
}
