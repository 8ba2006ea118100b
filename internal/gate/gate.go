package gate

import (
	"sync"
	"time"
)

// State is the gate's visible phase. Checking is transient: the comparison
// happens synchronously on the fourth digit, so callers observe it only
// through the change callback.
type State int

const (
	StateLocked State = iota
	StateChecking
	StateErrored
	StateUnlocked
)

const (
	codeLength        = 4
	defaultErrorDelay = time.Second
)

// Gate is the 4-digit passcode challenge in front of the settings view.
// Callers must check Settings.HasGate first: an empty configured passcode
// bypasses the challenge entirely and a Gate is never built for it.
type Gate struct {
	mu         sync.Mutex
	passcode   string
	input      string
	state      State
	errorDelay time.Duration
	onUnlock   func()
	onChange   func(State)
}

type Option func(*Gate)

// WithErrorDelay overrides how long the mismatch state stays visible.
func WithErrorDelay(d time.Duration) Option {
	return func(g *Gate) { g.errorDelay = d }
}

// WithChangeListener registers a callback fired on every state transition,
// for progressive UI feedback.
func WithChangeListener(fn func(State)) Option {
	return func(g *Gate) { g.onChange = fn }
}

// New builds a locked gate. onUnlock fires once when the full correct code
// has been entered.
func New(passcode string, onUnlock func(), opts ...Option) *Gate {
	g := &Gate{
		passcode:   passcode,
		state:      StateLocked,
		errorDelay: defaultErrorDelay,
		onUnlock:   onUnlock,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Press feeds one digit. Non-digits are ignored, as is input while the
// mismatch state is showing or after unlock. The check fires only when the
// input reaches exactly four digits.
func (g *Gate) Press(digit byte) {
	g.mu.Lock()

	if digit < '0' || digit > '9' || g.state == StateErrored || g.state == StateUnlocked {
		g.mu.Unlock()
		return
	}
	if len(g.input) >= codeLength {
		g.mu.Unlock()
		return
	}

	g.input += string(digit)
	if len(g.input) < codeLength {
		g.mu.Unlock()
		g.notify(StateLocked)
		return
	}

	g.state = StateChecking
	matched := g.input == g.passcode
	var unlock func()
	if matched {
		g.state = StateUnlocked
		unlock = g.onUnlock
	} else {
		g.state = StateErrored
		time.AfterFunc(g.errorDelay, g.clearError)
	}
	next := g.state
	g.mu.Unlock()

	g.notify(StateChecking)
	g.notify(next)
	if unlock != nil {
		unlock()
	}
}

// Erase removes the last entered digit.
func (g *Gate) Erase() {
	g.mu.Lock()
	if g.state == StateLocked && len(g.input) > 0 {
		g.input = g.input[:len(g.input)-1]
	}
	g.mu.Unlock()
	g.notify(StateLocked)
}

// State returns the current phase.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Entered reports how many digits are currently typed in, for the dot row.
func (g *Gate) Entered() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.input)
}

func (g *Gate) clearError() {
	g.mu.Lock()
	if g.state != StateErrored {
		g.mu.Unlock()
		return
	}
	g.input = ""
	g.state = StateLocked
	g.mu.Unlock()
	g.notify(StateLocked)
}

func (g *Gate) notify(s State) {
	if g.onChange != nil {
		g.onChange(s)
	}
}
