package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bothRoles = []Role{RoleVenue, RoleMusician}

// mainFlow drops the cancel carve-out so the remaining entries are the table rows.
func mainFlow(ts []Transition) []Transition {
	var out []Transition
	for _, t := range ts {
		if t.Action != ActionCancel {
			out = append(out, t)
		}
	}
	return out
}

func TestAllowedTransitions_Table(t *testing.T) {
	cases := []struct {
		status Status
		role   Role
		want   []Transition
	}{
		{StatusApplied, RoleVenue, []Transition{{ActionSelect, StatusBooked}}},
		{StatusBooked, RoleMusician, []Transition{{ActionConfirm, StatusConfirmed}}},
		{StatusConfirmed, RoleVenue, []Transition{{ActionComplete, StatusCompleted}}},
		{StatusConfirmed, RoleMusician, []Transition{{ActionComplete, StatusCompleted}}},
	}
	for _, tc := range cases {
		t.Run(string(tc.status)+"/"+string(tc.role), func(t *testing.T) {
			got := AllowedTransitions(tc.status, tc.role)
			assert.Equal(t, tc.want, mainFlow(got))
			// Main table entries come before cancel.
			require.NotEmpty(t, got)
			assert.Equal(t, tc.want[0], got[0])
		})
	}
}

func TestAllowedTransitions_PairsOutsideTableOfferNothingButCancel(t *testing.T) {
	inTable := map[Status]map[Role]bool{
		StatusApplied:   {RoleVenue: true},
		StatusBooked:    {RoleMusician: true},
		StatusConfirmed: {RoleVenue: true, RoleMusician: true},
	}
	for _, st := range Statuses {
		for _, role := range bothRoles {
			if inTable[st][role] {
				continue
			}
			got := AllowedTransitions(st, role)
			assert.Empty(t, mainFlow(got), "%s/%s", st, role)
			if st.IsTerminal() {
				assert.Empty(t, got, "%s/%s", st, role)
			} else {
				assert.Equal(t, []Transition{{ActionCancel, StatusCancelled}}, got, "%s/%s", st, role)
			}
		}
	}
}

func TestAllowedTransitions_CancelOfferedUntilTerminal(t *testing.T) {
	for _, st := range Statuses {
		for _, role := range bothRoles {
			_, ok := TransitionFor(st, role, ActionCancel)
			assert.Equal(t, !st.IsTerminal(), ok, "%s/%s", st, role)
		}
	}
	assert.False(t, CanTransition(StatusCancelled, RoleVenue, StatusCancelled))
	assert.False(t, CanTransition(StatusCompleted, RoleMusician, StatusCancelled))
}

func TestAllowedTransitions_UnknownInputs(t *testing.T) {
	assert.Nil(t, AllowedTransitions("selected", RoleVenue))
	assert.Nil(t, AllowedTransitions(StatusApplied, "promoter"))
	assert.Nil(t, AllowedTransitions(StatusApplied, ""))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusApplied, RoleVenue, StatusBooked))
	assert.False(t, CanTransition(StatusApplied, RoleMusician, StatusBooked))
	assert.False(t, CanTransition(StatusBooked, RoleVenue, StatusConfirmed))
	assert.False(t, CanTransition(StatusApplied, RoleVenue, StatusCompleted))
	assert.True(t, CanTransition(StatusInvited, RoleMusician, StatusCancelled))
}

func TestTransitionFor(t *testing.T) {
	tr, ok := TransitionFor(StatusBooked, RoleMusician, ActionConfirm)
	require.True(t, ok)
	assert.Equal(t, StatusConfirmed, tr.Target)

	_, ok = TransitionFor(StatusBooked, RoleVenue, ActionConfirm)
	assert.False(t, ok)
}
