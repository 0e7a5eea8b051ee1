package listsync

import "sync"

// GateState is the session gate's current view. Exactly one state holds
// at any time.
type GateState int

const (
	StateSignedOut GateState = iota
	StateLocked
	StateUnlocked
)

// DigitResult reports what happened after a passcode digit was entered.
type DigitResult int

const (
	// DigitPending means fewer than four digits are buffered.
	DigitPending DigitResult = iota
	// DigitUnlocked means the four digits matched and the gate opened.
	DigitUnlocked
	// DigitWrong means four digits were entered and did not match; the
	// buffer has been cleared and the gate stays locked.
	DigitWrong
)

const passcodeLength = 4

// Gate is the three-state session gate: signed out, signed in but locked
// behind the passcode pad, or unlocked. Unlocking lasts for the in-memory
// session only; signing out resets everything.
type Gate struct {
	mu       sync.Mutex
	state    GateState
	passcode string
	buffer   string
}

func NewGate(passcode string) *Gate {
	return &Gate{
		state:    StateSignedOut,
		passcode: passcode,
	}
}

func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// SignIn moves the gate to the locked state. Signing in never skips the
// passcode pad.
func (g *Gate) SignIn() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateLocked
	g.buffer = ""
}

func (g *Gate) SignOut() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateSignedOut
	g.buffer = ""
}

// EnterDigit appends one digit to the passcode buffer. When the fourth
// digit lands, the buffer is compared against the passcode: a match
// unlocks, anything else clears the buffer so the pad starts over. There
// is no lockout or backoff on repeated wrong codes.
func (g *Gate) EnterDigit(digit byte) DigitResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state != StateLocked {
		return DigitPending
	}
	if digit < '0' || digit > '9' {
		return DigitPending
	}

	g.buffer += string(digit)
	if len(g.buffer) < passcodeLength {
		return DigitPending
	}

	entered := g.buffer
	g.buffer = ""

	if entered == g.passcode {
		g.state = StateUnlocked
		return DigitUnlocked
	}
	return DigitWrong
}

// Backspace drops the last buffered digit.
func (g *Gate) Backspace() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.buffer) > 0 {
		g.buffer = g.buffer[:len(g.buffer)-1]
	}
}

// Entered reports how many digits are currently buffered, for rendering
// the pad's dots.
func (g *Gate) Entered() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.buffer)
}
