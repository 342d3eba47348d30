package game

// Phase represents the state of a hand
type Phase int

const (
	Idle Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	HandOver
)

func (p Phase) String() string {
	return [...]string{"idle", "preflop", "flop", "turn", "river", "showdown", "handover"}[p]
}

// Betting returns true if players may act in this phase.
func (p Phase) Betting() bool {
	return p >= PreFlop && p <= River
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise", "allin"}[a]
}

// ParseAction parses an action name as used in wire messages.
func ParseAction(s string) (Action, bool) {
	switch s {
	case "fold":
		return Fold, true
	case "check":
		return Check, true
	case "call":
		return Call, true
	case "raise":
		return Raise, true
	case "allin":
		return AllIn, true
	}
	return Fold, false
}
