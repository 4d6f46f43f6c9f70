package event

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-events-hub/internal/domain/shared"
	"github.com/campushub/campus-events-hub/internal/domain/user"
)

func eventWithParticipants(n int) Event {
	e := Event{ID: uuid.New()}
	for i := 0; i < n; i++ {
		e.Participants = append(e.Participants, uuid.New())
	}
	return e
}

func participantCounts(events []Event) []int {
	out := make([]int, len(events))
	for i, e := range events {
		out[i] = len(e.Participants)
	}
	return out
}

func TestFilterParticipants_SingleBucket(t *testing.T) {
	events := []Event{
		eventWithParticipants(0),
		eventWithParticipants(50),
		eventWithParticipants(75),
		eventWithParticipants(100),
		eventWithParticipants(150),
	}

	cases := []struct {
		bucket ParticipantsBucket
		want   []int
	}{
		{ParticipantsTo50, []int{0, 50}},
		{ParticipantsFrom50To100, []int{50, 75, 100}},
		{ParticipantsAbove100, []int{100, 150}},
	}
	for _, tc := range cases {
		f := Filter{Participants: []ParticipantsBucket{tc.bucket}}
		got, err := f.Apply(events, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, participantCounts(got), "bucket %s", tc.bucket)
	}
}

func TestFilterParticipants_TwoBucketsComplementTheExcluded(t *testing.T) {
	events := []Event{
		eventWithParticipants(10),
		eventWithParticipants(60),
		eventWithParticipants(120),
	}

	// to50 + above100 keeps what from50to100 would exclude at its boundaries
	f := Filter{Participants: []ParticipantsBucket{ParticipantsTo50, ParticipantsAbove100}}
	got, err := f.Apply(events, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 120}, participantCounts(got))

	f = Filter{Participants: []ParticipantsBucket{ParticipantsTo50, ParticipantsFrom50To100}}
	got, err = f.Apply(events, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 60}, participantCounts(got))

	f = Filter{Participants: []ParticipantsBucket{ParticipantsFrom50To100, ParticipantsAbove100}}
	got, err = f.Apply(events, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{60, 120}, participantCounts(got))
}

func TestFilterParticipants_NoneOrAllSelectedIsNoFilter(t *testing.T) {
	events := []Event{eventWithParticipants(10), eventWithParticipants(200)}

	got, err := Filter{}.Apply(events, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all := Filter{Participants: []ParticipantsBucket{
		ParticipantsTo50, ParticipantsFrom50To100, ParticipantsAbove100,
	}}
	got, err = all.Apply(events, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestFilterParticipants_UnknownBucket(t *testing.T) {
	events := []Event{eventWithParticipants(10), eventWithParticipants(75), eventWithParticipants(150)}

	cases := [][]ParticipantsBucket{
		{"tiny"},
		{ParticipantsTo50, "bogus"},
		{ParticipantsTo50, ParticipantsFrom50To100, "bogus"},
	}
	for _, sel := range cases {
		f := Filter{Participants: sel}

		_, err := f.Apply(events, nil)

		assert.True(t, shared.IsInvalidArgument(err), "selection %v", sel)
	}
}

func TestFilterTime_UnknownBucket(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	events := []Event{{ID: uuid.New(), StartDate: now.Add(-1 * time.Hour), EndDate: now.Add(1 * time.Hour)}}

	cases := [][]TimeBucket{
		{"soon"},
		{TimePast, "soon"},
	}
	for _, sel := range cases {
		f := Filter{Time: sel, Now: now}

		_, err := f.Apply(events, nil)

		assert.True(t, shared.IsInvalidArgument(err), "selection %v", sel)
	}
}

func TestFilterPrice_UnknownBucket(t *testing.T) {
	f := Filter{Price: []PriceBucket{PriceFree, "premium"}}

	_, err := f.Apply([]Event{{ID: uuid.New()}}, nil)

	assert.True(t, shared.IsInvalidArgument(err))
}

func TestFilterTime_SingleBucket(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := Event{ID: uuid.New(), StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour)}
	current := Event{ID: uuid.New(), StartDate: now.Add(-1 * time.Hour), EndDate: now.Add(1 * time.Hour)}
	future := Event{ID: uuid.New(), StartDate: now.Add(24 * time.Hour), EndDate: now.Add(48 * time.Hour)}
	events := []Event{past, current, future}

	cases := []struct {
		bucket TimeBucket
		want   uuid.UUID
	}{
		{TimePast, past.ID},
		{TimeCurrent, current.ID},
		{TimeFuture, future.ID},
	}
	for _, tc := range cases {
		f := Filter{Time: []TimeBucket{tc.bucket}, Now: now}
		got, err := f.Apply(events, nil)
		require.NoError(t, err)
		require.Len(t, got, 1, "bucket %s", tc.bucket)
		assert.Equal(t, tc.want, got[0].ID)
	}
}

func TestFilterTime_TwoBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := Event{ID: uuid.New(), StartDate: now.Add(-48 * time.Hour), EndDate: now.Add(-24 * time.Hour)}
	current := Event{ID: uuid.New(), StartDate: now.Add(-1 * time.Hour), EndDate: now.Add(1 * time.Hour)}
	future := Event{ID: uuid.New(), StartDate: now.Add(24 * time.Hour), EndDate: now.Add(48 * time.Hour)}
	events := []Event{past, current, future}

	f := Filter{Time: []TimeBucket{TimeCurrent, TimeFuture}, Now: now}
	got, err := f.Apply(events, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{current.ID, future.ID}, []uuid.UUID{got[0].ID, got[1].ID})

	f = Filter{Time: []TimeBucket{TimePast, TimeCurrent}, Now: now}
	got, err = f.Apply(events, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{past.ID, current.ID}, []uuid.UUID{got[0].ID, got[1].ID})

	f = Filter{Time: []TimeBucket{TimePast, TimeFuture}, Now: now}
	got, err = f.Apply(events, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{past.ID, future.ID}, []uuid.UUID{got[0].ID, got[1].ID})
}

func TestFilterPrice(t *testing.T) {
	fee := 25.0
	zero := 0.0
	free := Event{ID: uuid.New()}
	freeZero := Event{ID: uuid.New(), Fee: &zero}
	paid := Event{ID: uuid.New(), Fee: &fee}
	events := []Event{free, freeZero, paid}

	got, err := Filter{Price: []PriceBucket{PriceFree}}.Apply(events, nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = Filter{Price: []PriceBucket{PricePaid}}.Apply(events, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, paid.ID, got[0].ID)

	// both selected disables the dimension
	got, err = Filter{Price: []PriceBucket{PriceFree, PricePaid}}.Apply(events, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFilterName(t *testing.T) {
	events := []Event{
		{ID: uuid.New(), Title: "Spring Hackathon"},
		{ID: uuid.New(), Title: "spring cleanup"},
	}

	got, err := Filter{Name: "Spring"}.Apply(events, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Spring Hackathon", got[0].Title)
}

func TestFilterOrganizerName(t *testing.T) {
	ann := user.User{ID: uuid.New(), FirstName: "Annabel", LastName: "Smith"}
	bob := user.User{ID: uuid.New(), FirstName: "Bob", LastName: "Jones"}
	users := map[uuid.UUID]user.User{ann.ID: ann, bob.ID: bob}
	resolve := func(id uuid.UUID) (user.User, bool) {
		u, ok := users[id]
		return u, ok
	}

	byAnn := Event{ID: uuid.New(), OrganizerID: &ann.ID}
	byBob := Event{ID: uuid.New(), OrganizerID: &bob.ID}
	orphan := Event{ID: uuid.New()}
	events := []Event{byAnn, byBob, orphan}

	// a single token is a first-name substring match; any last name passes
	got, err := Filter{OrganizerName: "Ann"}.Apply(events, resolve)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, byAnn.ID, got[0].ID)

	got, err = Filter{OrganizerName: "Annabel Smith"}.Apply(events, resolve)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// second token must match the last name
	got, err = Filter{OrganizerName: "Annabel Jones"}.Apply(events, resolve)
	require.NoError(t, err)
	assert.Empty(t, got)

	// events without an organizer never match a name filter
	got, err = Filter{OrganizerName: "Bob"}.Apply(events, resolve)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, byBob.ID, got[0].ID)
}

func TestFilterOnlyAvailable(t *testing.T) {
	two := 2
	full := eventWithParticipants(2)
	full.Capacity = &two
	open := eventWithParticipants(1)
	open.Capacity = &two
	unlimited := eventWithParticipants(500)

	got, err := Filter{OnlyAvailable: true}.Apply([]Event{full, open, unlimited}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{open.ID, unlimited.ID}, []uuid.UUID{got[0].ID, got[1].ID})
}

func TestFilterConjunction(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	match := Event{ID: uuid.New(), Title: "Chess Night", StartDate: now.Add(time.Hour), EndDate: now.Add(3 * time.Hour)}
	wrongTime := Event{ID: uuid.New(), Title: "Chess Night", StartDate: now.Add(-3 * time.Hour), EndDate: now.Add(-time.Hour)}
	wrongName := Event{ID: uuid.New(), Title: "Movie Night", StartDate: now.Add(time.Hour), EndDate: now.Add(3 * time.Hour)}

	f := Filter{Name: "Chess", Time: []TimeBucket{TimeFuture}, Now: now}
	got, err := f.Apply([]Event{match, wrongTime, wrongName}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
}
