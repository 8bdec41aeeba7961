package booking

type Action string

const (
	ActionSelect   Action = "select"
	ActionConfirm  Action = "confirm"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

type Transition struct {
	Action Action `json:"action"`
	Target Status `json:"target"`
}

type rule struct {
	from   Status
	actors []Role
	via    Transition
}

var transitionTable = []rule{
	{from: StatusApplied, actors: []Role{RoleVenue}, via: Transition{ActionSelect, StatusBooked}},
	{from: StatusBooked, actors: []Role{RoleMusician}, via: Transition{ActionConfirm, StatusConfirmed}},
	{from: StatusConfirmed, actors: []Role{RoleVenue, RoleMusician}, via: Transition{ActionComplete, StatusCompleted}},
}

var cancelTransition = Transition{ActionCancel, StatusCancelled}

// AllowedTransitions returns what role may do to a booking in status, main table first and
// cancel last. Cancel is offered to either side until the booking is terminal.
func AllowedTransitions(status Status, role Role) []Transition {
	if role != RoleVenue && role != RoleMusician {
		return nil
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil
	}

	var out []Transition
	for _, r := range transitionTable {
		if r.from != status {
			continue
		}
		for _, a := range r.actors {
			if a == role {
				out = append(out, r.via)
				break
			}
		}
	}
	if !status.IsTerminal() {
		out = append(out, cancelTransition)
	}
	return out
}

func CanTransition(status Status, role Role, target Status) bool {
	_, ok := find(AllowedTransitions(status, role), func(t Transition) bool { return t.Target == target })
	return ok
}

// TransitionFor looks up the transition behind a named action.
func TransitionFor(status Status, role Role, action Action) (Transition, bool) {
	return find(AllowedTransitions(status, role), func(t Transition) bool { return t.Action == action })
}

func find(ts []Transition, match func(Transition) bool) (Transition, bool) {
	for _, t := range ts {
		if match(t) {
			return t, true
		}
	}
	return Transition{}, false
}
