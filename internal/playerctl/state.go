package playerctl

// State is one of the six player states spec.md 4.7 names.
type State int

const (
	Idle State = iota
	Walk
	Midair
	Incapacitated
	Dead
	Emoting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Walk:
		return "Walk"
	case Midair:
		return "Midair"
	case Incapacitated:
		return "Incapacitated"
	case Dead:
		return "Dead"
	case Emoting:
		return "Emoting"
	default:
		return "Unknown"
	}
}

// PlayerState is the state-machine component: Current holds the live state,
// EmoteKey names which emote animation to play while Current == Emoting.
type PlayerState struct {
	Current  State
	EmoteKey string
}

// tickContext is everything the dispatch table's transition rules need to
// decide next state, gathered once per entity per tick by the controller
// system before consulting the table.
type tickContext struct {
	grounded      bool
	moveX         float64
	incapacitated bool
	lethalDamage  bool
	jumpPressed   bool
}

func groundedOrMidair(ctx tickContext) State {
	if !ctx.grounded {
		return Midair
	}
	if ctx.moveX == 0 {
		return Idle
	}
	return Walk
}

// transitions is the per-state dispatch table spec.md 4.7 calls for: each
// entry decides the next state given the current tick's context. Lethal
// damage and incapacitate-zone contact are checked ahead of this table (they
// pre-empt every state), so each entry here only encodes what's specific to
// leaving that particular state.
var transitions = map[State]func(ctx tickContext) State{
	Idle:          groundedOrMidair,
	Walk:          groundedOrMidair,
	Midair:        groundedOrMidair,
	Incapacitated: groundedOrMidair,
	Dead: func(ctx tickContext) State {
		return Dead
	},
	Emoting: func(ctx tickContext) State {
		if ctx.jumpPressed || ctx.moveX != 0 || !ctx.grounded {
			return groundedOrMidair(ctx)
		}
		return Emoting
	},
}

// nextState resolves ctx.lethalDamage and ctx.incapacitated ahead of the
// dispatch table, since both override every state unconditionally, then
// looks up current in the table for everything else.
func nextState(current State, ctx tickContext) State {
	if ctx.lethalDamage {
		return Dead
	}
	if current == Dead {
		return Dead
	}
	if ctx.incapacitated {
		return Incapacitated
	}
	fn, ok := transitions[current]
	if !ok {
		return groundedOrMidair(ctx)
	}
	return fn(ctx)
}
