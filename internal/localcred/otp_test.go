package localcred

import "testing"

func TestOTPSingleDigitsAdvanceFocus(t *testing.T) {
	o := NewOTPInput()
	for i, d := range []string{"1", "2", "3", "4", "5", "6"} {
		o.Type(d)
		if i < CodeLength-1 && o.Focus() != i+1 {
			t.Fatalf("after digit %d focus = %d, want %d", i+1, o.Focus(), i+1)
		}
	}

	code, complete := o.Code()
	if !complete {
		t.Fatal("expected complete code")
	}
	if code != "123456" {
		t.Fatalf("expected 123456, got %q", code)
	}
}

func TestOTPBlockPasteDistributes(t *testing.T) {
	o := NewOTPInput()
	o.Type("3") // focus away from the first slot
	o.Type("123456")

	code, complete := o.Code()
	if !complete {
		t.Fatal("expected complete code after block paste")
	}
	if code != "123456" {
		t.Fatalf("paste did not restart from slot 0: %q", code)
	}
}

func TestOTPPasteStripsSeparators(t *testing.T) {
	o := NewOTPInput()
	o.Type("12-34 5:6")

	code, complete := o.Code()
	if !complete {
		t.Fatal("expected complete code")
	}
	if code != "123456" {
		t.Fatalf("expected separators stripped, got %q", code)
	}
}

func TestOTPIgnoresNonDigits(t *testing.T) {
	o := NewOTPInput()
	o.Type("a")
	if o.Focus() != 0 || o.Slot(0) != "" {
		t.Fatalf("non-digit input changed state: focus=%d slot=%q", o.Focus(), o.Slot(0))
	}
}

func TestOTPBackspace(t *testing.T) {
	o := NewOTPInput()
	o.Type("1")
	o.Type("2")

	// Focused slot (2) is empty: backspace moves left and clears "2".
	o.Backspace()
	if o.Focus() != 1 {
		t.Fatalf("expected focus 1 after backspace on empty slot, got %d", o.Focus())
	}
	if o.Slot(1) != "" {
		t.Fatalf("expected slot 1 cleared, got %q", o.Slot(1))
	}

	// Slot 1 now empty: next backspace moves to slot 0 and clears it.
	o.Backspace()
	if o.Focus() != 0 || o.Slot(0) != "" {
		t.Fatalf("expected slot 0 cleared, focus=%d slot=%q", o.Focus(), o.Slot(0))
	}
}

func TestOTPIncompleteCode(t *testing.T) {
	o := NewOTPInput()
	o.Type("123")
	if code, complete := o.Code(); complete {
		t.Fatalf("expected incomplete code, got %q", code)
	}
}

func TestOTPOverflowIgnored(t *testing.T) {
	o := NewOTPInput()
	o.Type("1234567890")
	code, complete := o.Code()
	if !complete {
		t.Fatal("expected complete code")
	}
	if code != "123456" {
		t.Fatalf("expected overflow dropped, got %q", code)
	}
}
