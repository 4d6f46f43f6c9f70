package event

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

// TimeBucket classifies an event relative to the current moment.
type TimeBucket string

const (
	TimePast    TimeBucket = "past"
	TimeCurrent TimeBucket = "current"
	TimeFuture  TimeBucket = "future"
)

// IsValid checks that the bucket is a recognized value.
func (t TimeBucket) IsValid() bool {
	return t == TimePast || t == TimeCurrent || t == TimeFuture
}

// ParticipantsBucket classifies an event by participant count. Boundaries are
// inclusive on both sides they touch: an event with exactly 50 participants
// is in both To50 and From50To100.
type ParticipantsBucket string

const (
	ParticipantsTo50        ParticipantsBucket = "to50"
	ParticipantsFrom50To100 ParticipantsBucket = "from50to100"
	ParticipantsAbove100    ParticipantsBucket = "above100"
)

// IsValid checks that the bucket is a recognized value.
func (p ParticipantsBucket) IsValid() bool {
	return p == ParticipantsTo50 || p == ParticipantsFrom50To100 || p == ParticipantsAbove100
}

// PriceBucket is the binary free/paid dimension.
type PriceBucket string

const (
	PriceFree PriceBucket = "free"
	PricePaid PriceBucket = "paid"
)

// IsValid checks that the bucket is a recognized value.
func (p PriceBucket) IsValid() bool {
	return p == PriceFree || p == PricePaid
}

// OrganizerResolver looks up an event's organizer for name filtering.
type OrganizerResolver func(id uuid.UUID) (user.User, bool)

// Filter is a declarative, possibly multi-valued set of listing filters.
//
// For each tri-valued dimension, selecting zero buckets or all three imposes
// no filter: selecting nothing and selecting everything both mean
// "don't care". Exactly one selected bucket filters to that bucket; exactly
// two filters to the complement of the excluded bucket.
type Filter struct {
	Time         []TimeBucket
	Participants []ParticipantsBucket
	Price        []PriceBucket

	// Name is a case-sensitive substring match on the event title.
	Name string

	// OrganizerName is split on whitespace into a first-name token and a
	// last-name token (defaulting to empty, which matches any last name);
	// both must be contained, case-sensitively, in the organizer's names.
	OrganizerName string

	// OnlyAvailable keeps events with no capacity limit or with remaining
	// capacity strictly greater than zero.
	OnlyAvailable bool

	// Now anchors the time dimension; the zero value means time.Now().
	Now time.Time
}

// Apply filters the events conjunctively with every active filter. The input
// slice is not modified. An unrecognized bucket value is a caller defect and
// yields an invalid-argument error.
func (f Filter) Apply(events []Event, resolve OrganizerResolver) ([]Event, error) {
	out := events

	out = f.applyName(out)
	out = f.applyOrganizerName(out, resolve)

	out, err := f.applyParticipants(out)
	if err != nil {
		return nil, err
	}

	out, err = f.applyTime(out)
	if err != nil {
		return nil, err
	}

	out, err = f.applyPrice(out)
	if err != nil {
		return nil, err
	}

	if f.OnlyAvailable {
		out = keep(out, func(e Event) bool { return e.HasAvailablePlace() })
	}

	return out, nil
}

func (f Filter) applyName(events []Event) []Event {
	if f.Name == "" {
		return events
	}
	return keep(events, func(e Event) bool {
		return strings.Contains(e.Title, f.Name)
	})
}

func (f Filter) applyOrganizerName(events []Event, resolve OrganizerResolver) []Event {
	if f.OrganizerName == "" || resolve == nil {
		return events
	}

	tokens := strings.Fields(f.OrganizerName)
	if len(tokens) == 0 {
		return events
	}
	firstName := tokens[0]
	lastName := ""
	if len(tokens) > 1 {
		lastName = tokens[1]
	}

	return keep(events, func(e Event) bool {
		if e.OrganizerID == nil {
			return false
		}
		org, ok := resolve(*e.OrganizerID)
		if !ok {
			return false
		}
		return strings.Contains(org.FirstName, firstName) &&
			strings.Contains(org.LastName, lastName)
	})
}

// applyParticipants implements the tri-state bucket chain: one selected
// bucket filters to its boundary predicate, two selected buckets filter to
// the complement of the excluded bucket, zero or three disable the filter.
func (f Filter) applyParticipants(events []Event) ([]Event, error) {
	sel := f.Participants
	for _, b := range sel {
		if !b.IsValid() {
			return nil, shared.NewInvalidArgument("filter", "unknown participants bucket: "+string(b))
		}
	}
	if len(sel) == 0 || len(sel) >= 3 {
		return events, nil
	}

	if len(sel) == 1 {
		switch sel[0] {
		case ParticipantsTo50:
			return keep(events, func(e Event) bool {
				return len(e.Participants) <= 50
			}), nil
		case ParticipantsFrom50To100:
			return keep(events, func(e Event) bool {
				return len(e.Participants) >= 50 && len(e.Participants) <= 100
			}), nil
		default:
			return keep(events, func(e Event) bool {
				return len(e.Participants) >= 100
			}), nil
		}
	}

	switch {
	case !hasParticipantsBucket(sel, ParticipantsTo50):
		return keep(events, func(e Event) bool {
			return len(e.Participants) >= 50
		}), nil
	case !hasParticipantsBucket(sel, ParticipantsAbove100):
		return keep(events, func(e Event) bool {
			return len(e.Participants) <= 100
		}), nil
	case !hasParticipantsBucket(sel, ParticipantsFrom50To100):
		return keep(events, func(e Event) bool {
			return len(e.Participants) <= 50 || len(e.Participants) >= 100
		}), nil
	default:
		return events, nil
	}
}

func (f Filter) applyTime(events []Event) ([]Event, error) {
	sel := f.Time
	for _, b := range sel {
		if !b.IsValid() {
			return nil, shared.NewInvalidArgument("filter", "unknown time bucket: "+string(b))
		}
	}
	if len(sel) == 0 || len(sel) >= 3 {
		return events, nil
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	if len(sel) == 1 {
		switch sel[0] {
		case TimePast:
			return keep(events, func(e Event) bool {
				return !e.EndDate.After(now)
			}), nil
		case TimeCurrent:
			return keep(events, func(e Event) bool {
				return !e.StartDate.After(now) && !e.EndDate.Before(now)
			}), nil
		default:
			return keep(events, func(e Event) bool {
				return !e.StartDate.Before(now)
			}), nil
		}
	}

	switch {
	case !hasTimeBucket(sel, TimePast):
		return keep(events, func(e Event) bool {
			return !e.EndDate.Before(now)
		}), nil
	case !hasTimeBucket(sel, TimeFuture):
		return keep(events, func(e Event) bool {
			return !e.StartDate.After(now)
		}), nil
	case !hasTimeBucket(sel, TimeCurrent):
		return keep(events, func(e Event) bool {
			return !e.EndDate.After(now) || !e.StartDate.Before(now)
		}), nil
	default:
		return events, nil
	}
}

// applyPrice filters only when exactly one of the two values is selected;
// selecting both or neither disables the filter.
func (f Filter) applyPrice(events []Event) ([]Event, error) {
	for _, b := range f.Price {
		if !b.IsValid() {
			return nil, shared.NewInvalidArgument("filter", "unknown price bucket: "+string(b))
		}
	}
	if len(f.Price) != 1 {
		return events, nil
	}
	if f.Price[0] == PriceFree {
		return keep(events, func(e Event) bool {
			return e.Fee == nil || *e.Fee == 0
		}), nil
	}
	return keep(events, func(e Event) bool {
		return e.Fee != nil && *e.Fee > 0
	}), nil
}

func keep(events []Event, pred func(Event) bool) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func hasParticipantsBucket(sel []ParticipantsBucket, b ParticipantsBucket) bool {
	for _, v := range sel {
		if v == b {
			return true
		}
	}
	return false
}

func hasTimeBucket(sel []TimeBucket, b TimeBucket) bool {
	for _, v := range sel {
		if v == b {
			return true
		}
	}
	return false
}
