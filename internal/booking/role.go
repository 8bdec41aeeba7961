package booking

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleVenue    Role = "venue"
	RoleMusician Role = "musician"
)

func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleVenue:
		return RoleVenue, nil
	case RoleMusician:
		return RoleMusician, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Participants is everything needed to decide which side of a booking a user is on.
// VenueOwnerID and MusicianOwnerID are user ids, not profile ids.
type Participants struct {
	BookingID       string
	UserID          string
	VenueOwnerID    string
	MusicianOwnerID string
}

func (p Participants) roles() []Role {
	if p.UserID == "" {
		return nil
	}
	var out []Role
	if p.VenueOwnerID != "" && p.UserID == p.VenueOwnerID {
		out = append(out, RoleVenue)
	}
	if p.MusicianOwnerID != "" && p.UserID == p.MusicianOwnerID {
		out = append(out, RoleMusician)
	}
	return out
}

// DeriveRole returns the single role the user holds on the booking.
func DeriveRole(p Participants) (Role, error) {
	return ResolveRole(p, "")
}

// ResolveRole is DeriveRole with an optional requested role, used when one user owns both
// the venue and the musician profile on a booking.
func ResolveRole(p Participants, requested Role) (Role, error) {
	roles := p.roles()
	if len(roles) == 0 {
		return "", ErrNotParticipant
	}
	if requested != "" {
		for _, r := range roles {
			if r == requested {
				return r, nil
			}
		}
		return "", ErrNotParticipant
	}
	if len(roles) > 1 {
		return "", ErrAmbiguousRole
	}
	return roles[0], nil
}
