package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func press(g *Gate, code string) {
	for i := 0; i < len(code); i++ {
		g.Press(code[i])
	}
}

func TestUnlocksOnCorrectCode(t *testing.T) {
	unlocked := false
	g := New("1234", func() { unlocked = true })

	press(g, "1234")

	assert.Equal(t, StateUnlocked, g.State())
	assert.True(t, unlocked)
}

func TestCheckFiresOnlyAtFourDigits(t *testing.T) {
	unlocked := false
	g := New("1234", func() { unlocked = true })

	press(g, "123")

	assert.Equal(t, StateLocked, g.State())
	assert.False(t, unlocked)
	assert.Equal(t, 3, g.Entered())
}

func TestMismatchShowsErrorThenResets(t *testing.T) {
	unlocked := false
	g := New("1234", func() { unlocked = true }, WithErrorDelay(10*time.Millisecond))

	press(g, "9999")

	assert.Equal(t, StateErrored, g.State())
	assert.False(t, unlocked)

	assert.Eventually(t, func() bool {
		return g.State() == StateLocked && g.Entered() == 0
	}, time.Second, 5*time.Millisecond)

	// A fresh attempt still works after the reset.
	press(g, "1234")
	assert.Equal(t, StateUnlocked, g.State())
	assert.True(t, unlocked)
}

func TestInputIgnoredWhileErrorShowing(t *testing.T) {
	g := New("1234", func() {}, WithErrorDelay(time.Minute))

	press(g, "9999")
	press(g, "1234")

	assert.Equal(t, StateErrored, g.State())
}

func TestNonDigitsIgnored(t *testing.T) {
	g := New("1234", func() {})

	g.Press('a')
	g.Press('#')

	assert.Equal(t, 0, g.Entered())
}

func TestErase(t *testing.T) {
	g := New("1234", func() {})

	press(g, "12")
	g.Erase()

	assert.Equal(t, 1, g.Entered())

	g.Erase()
	g.Erase() // at zero, no-op
	assert.Equal(t, 0, g.Entered())
}

func TestWrongLengthConfiguredCodeNeverUnlocks(t *testing.T) {
	// A misconfigured 5-digit code can never match: the check fires at
	// exactly four entered digits.
	unlocked := false
	g := New("12345", func() { unlocked = true }, WithErrorDelay(time.Minute))

	press(g, "12345")

	assert.False(t, unlocked)
	assert.Equal(t, StateErrored, g.State())
}

func TestChangeListenerSeesTransitions(t *testing.T) {
	var seen []State
	g := New("1234", func() {}, WithChangeListener(func(s State) { seen = append(seen, s) }))

	press(g, "1234")

	assert.Contains(t, seen, StateChecking)
	assert.Equal(t, StateUnlocked, seen[len(seen)-1])
}
