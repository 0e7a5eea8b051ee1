package listsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func enterCode(g *Gate, code string) DigitResult {
	var result DigitResult
	for i := 0; i < len(code); i++ {
		result = g.EnterDigit(code[i])
	}
	return result
}

func TestGateStartsSignedOut(t *testing.T) {
	gate := NewGate("1304")
	assert.Equal(t, StateSignedOut, gate.State())
}

func TestCorrectPasscodeUnlocks(t *testing.T) {
	gate := NewGate("1304")
	gate.SignIn()
	assert.Equal(t, StateLocked, gate.State())

	result := enterCode(gate, "1304")

	assert.Equal(t, DigitUnlocked, result)
	assert.Equal(t, StateUnlocked, gate.State())
}

func TestWrongPasscodeClearsInputAndStaysLocked(t *testing.T) {
	gate := NewGate("1304")
	gate.SignIn()

	result := enterCode(gate, "1305")

	assert.Equal(t, DigitWrong, result)
	assert.Equal(t, StateLocked, gate.State())
	assert.Equal(t, 0, gate.Entered(), "buffer is cleared after a mismatch")

	// The pad accepts a fresh attempt right away, no lockout
	assert.Equal(t, DigitUnlocked, enterCode(gate, "1304"))
}

func TestPartialEntryIsPending(t *testing.T) {
	gate := NewGate("1304")
	gate.SignIn()

	assert.Equal(t, DigitPending, enterCode(gate, "130"))
	assert.Equal(t, 3, gate.Entered())
}

func TestBackspaceDropsLastDigit(t *testing.T) {
	gate := NewGate("1304")
	gate.SignIn()

	enterCode(gate, "139")
	gate.Backspace()
	assert.Equal(t, 2, gate.Entered())

	assert.Equal(t, DigitUnlocked, enterCode(gate, "04"))
}

func TestNonDigitIsIgnored(t *testing.T) {
	gate := NewGate("1304")
	gate.SignIn()

	gate.EnterDigit('x')
	assert.Equal(t, 0, gate.Entered())
}

func TestSignOutResetsUnlock(t *testing.T) {
	gate := NewGate("1304")
	gate.SignIn()
	enterCode(gate, "1304")
	assert.Equal(t, StateUnlocked, gate.State())

	gate.SignOut()
	assert.Equal(t, StateSignedOut, gate.State())

	// Unlock is not persisted across sessions
	gate.SignIn()
	assert.Equal(t, StateLocked, gate.State())
}
