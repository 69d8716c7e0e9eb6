package smf

import "testing"

func TestControlChangeEventControllerLabel(t *testing.T) {
	ev := &ControlChangeEvent{Controller: 7}
	got := ev.ControllerLabel()
	want := "Channel Volume (MSB)"
	if got != want {
		t.Fatalf("ControllerLabel() = %q, want %q", got, want)
	}
}

func TestControlChangeEventControllerLabelUnknown(t *testing.T) {
	ev := &ControlChangeEvent{Controller: 3}
	got := ev.ControllerLabel()
	if got == "" {
		t.Fatal("expected a non-empty fallback label for an unassigned controller")
	}
}

func TestSystemExclusiveEventManufacturerLabel(t *testing.T) {
	ev := &SystemExclusiveEvent{ManufacturerID: 0x41}
	got := ev.ManufacturerLabel()
	want := "Roland"
	if got != want {
		t.Fatalf("ManufacturerLabel() = %q, want %q", got, want)
	}
}

func TestSystemExclusiveEventManufacturerLabelUnknown(t *testing.T) {
	ev := &SystemExclusiveEvent{ManufacturerID: 0xF3}
	got := ev.ManufacturerLabel()
	if got == "" {
		t.Fatal("expected a non-empty fallback label for an unassigned manufacturer id")
	}
}
