package ez80emu

import "testing"

func TestInterruptRaiseSetsStatusOnlyWhenEnabled(t *testing.T) {
	ic := newInterruptController()
	ic.Raise(3)
	if ic.IRQAsserted() {
		t.Fatalf("raising a disabled line should not assert an interrupt")
	}
	requireEqualU32(t, "raw", ic.Raw(), 1<<3)

	ic.Write(intcRegEnable, 1<<3)
	ic.Raise(3)
	if !ic.IRQAsserted() {
		t.Fatalf("raising an enabled line should assert an interrupt")
	}
}

func TestInterruptEnableWriteMasksExistingStatus(t *testing.T) {
	ic := newInterruptController()
	ic.Write(intcRegEnable, 0xFF)
	ic.Raise(0)
	ic.Raise(1)
	requireEqualU32(t, "status before disabling", ic.Status(), 0x03)

	ic.Write(intcRegEnable, 0xFD) // disable line 1
	requireEqualU32(t, "status after narrowing enable", ic.Status(), 0x01)
}

func TestInterruptStatusWriteIsOneToClear(t *testing.T) {
	ic := newInterruptController()
	ic.Write(intcRegEnable, 0xFF)
	ic.Raise(2)
	requireEqualU32(t, "status", ic.Status(), 1<<2)

	ic.Write(intcRegStatus, 1<<2)
	requireEqualU32(t, "status after W1C", ic.Status(), 0)
	if ic.IRQAsserted() {
		t.Fatalf("clearing the only asserted line should deassert the interrupt")
	}
}

func TestInterruptRawIsReadOnly(t *testing.T) {
	ic := newInterruptController()
	ic.Write(intcRegRaw, 0xFF)
	requireEqualU32(t, "raw after a direct write attempt", ic.Raw(), 0)
}

func TestInterruptLowerDropsStatusWithRaw(t *testing.T) {
	ic := newInterruptController()
	ic.Write(intcRegEnable, 0xFF)
	ic.Raise(4)
	ic.Lower(4)
	requireEqualU32(t, "status after lowering the raised line", ic.Status(), 0)
	requireEqualU32(t, "raw after lower", ic.Raw(), 0)
}

func TestInterruptStatusIsAlwaysSubsetOfRawAndEnable(t *testing.T) {
	ic := newInterruptController()
	ic.Write(intcRegEnable, 0x0F)
	ic.Raise(0)
	ic.Raise(5) // not enabled
	if ic.Status()&^(ic.Raw()&ic.Enable()) != 0 {
		t.Fatalf("status must always be a subset of raw & enable")
	}
}
