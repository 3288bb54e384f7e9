package localcred

import "strings"

// CodeLength is the number of one-time-code slots.
const CodeLength = 6

// OTPInput models the six-slot code entry. Typing a multi-digit string
// into any slot distributes one digit per slot starting at the first;
// backspace on an empty slot moves focus to the previous one.
type OTPInput struct {
	slots [CodeLength]byte
	focus int
}

// NewOTPInput returns an empty input focused on the first slot.
func NewOTPInput() *OTPInput {
	return &OTPInput{}
}

// Focus returns the index of the focused slot.
func (o *OTPInput) Focus() int {
	return o.focus
}

// Slot returns the digit in slot i, or "" when empty.
func (o *OTPInput) Slot(i int) string {
	if i < 0 || i >= CodeLength || o.slots[i] == 0 {
		return ""
	}
	return string(o.slots[i])
}

// Type enters input at the focused slot. A single digit fills the slot
// and advances focus; a pasted block is stripped of separators and
// distributed one digit per slot from the first slot, leaving focus
// past the last filled slot. Non-digit input is ignored.
func (o *OTPInput) Type(input string) {
	digits := digitsOf(input)
	if len(digits) == 0 {
		return
	}

	if len(digits) > 1 {
		// Block paste restarts from the first slot regardless of focus.
		o.Clear()
	}

	for _, d := range digits {
		if o.focus >= CodeLength {
			break
		}
		o.slots[o.focus] = d
		o.focus++
	}
	if o.focus >= CodeLength {
		o.focus = CodeLength - 1
	}
}

// Backspace clears the focused slot; when the focused slot is already
// empty, focus moves to the previous slot and clears it instead.
func (o *OTPInput) Backspace() {
	if o.slots[o.focus] == 0 && o.focus > 0 {
		o.focus--
	}
	o.slots[o.focus] = 0
}

// Clear empties every slot and resets focus.
func (o *OTPInput) Clear() {
	*o = OTPInput{}
}

// Code returns the assembled six-digit code and whether every slot is
// filled.
func (o *OTPInput) Code() (string, bool) {
	var b strings.Builder
	for _, s := range o.slots {
		if s == 0 {
			return "", false
		}
		b.WriteByte(s)
	}
	return b.String(), true
}

func digitsOf(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return out
}
