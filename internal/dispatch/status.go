package dispatch

import "sync"

// Channel is one independent notification target.
type Channel string

const (
	ChannelAdmin    Channel = "admin"
	ChannelCustomer Channel = "customer"
)

// Status is a channel's delivery state. Transitions are monotonic:
// idle → sending → sent|error, never backwards.
type Status int

const (
	StatusIdle Status = iota
	StatusSending
	StatusSent
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSending:
		return "sending"
	case StatusSent:
		return "sent"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Tracker records per-channel status for one dispatch run and notifies an
// observer on every transition so the success screen can update live. A
// fresh Tracker is created per run and thrown away afterwards.
type Tracker struct {
	mu       sync.Mutex
	statuses map[Channel]Status
	onChange func(Channel, Status)
}

// NewTracker builds a tracker with both channels idle. onChange may be nil.
func NewTracker(onChange func(Channel, Status)) *Tracker {
	return &Tracker{
		statuses: map[Channel]Status{
			ChannelAdmin:    StatusIdle,
			ChannelCustomer: StatusIdle,
		},
		onChange: onChange,
	}
}

// Status returns the channel's current state.
func (t *Tracker) Status(ch Channel) Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.statuses[ch]
}

// transition applies a state change. Only idle→sending and
// sending→sent|error are legal; sent and error are terminal.
func (t *Tracker) transition(ch Channel, next Status) bool {
	t.mu.Lock()
	current := t.statuses[ch]
	legal := (current == StatusIdle && next == StatusSending) ||
		(current == StatusSending && (next == StatusSent || next == StatusError))
	if !legal {
		t.mu.Unlock()
		return false
	}
	t.statuses[ch] = next
	t.mu.Unlock()

	if t.onChange != nil {
		t.onChange(ch, next)
	}
	return true
}
