package domain

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func at(hoursAgo float64) time.Time {
	return testNow.Add(-time.Duration(hoursAgo * float64(time.Hour)))
}

func TestWindow_Contains(t *testing.T) {
	w := Window{Days: 30}
	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"now", testNow, true},
		{"exactly window days old", testNow.AddDate(0, 0, -30), true},
		{"window days and 23 hours old", testNow.Add(-(30*24 + 23) * time.Hour), true},
		{"window days plus one", testNow.AddDate(0, 0, -31), false},
		{"far past", testNow.AddDate(-1, 0, 0), false},
		{"future", testNow.Add(time.Hour), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(testNow, tt.t); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestReconstruct_Scenario(t *testing.T) {
	t0 := at(10)
	t1 := t0.Add(2 * time.Hour)
	t2 := t1.Add(time.Hour)
	events := []Event{
		{Time: t0, State: StateOn},
		{Time: t1, State: StateOff},
		{Time: t2, State: StateOn},
	}

	u := Reconstruct("Planer", events, Window{Days: 30}, testNow)

	if u.Tool != "Planer" {
		t.Errorf("expected tool Planer, got %s", u.Tool)
	}
	if !u.Since.Equal(t0) {
		t.Errorf("expected since %v, got %v", t0, u.Since)
	}
	if u.Events != 3 {
		t.Errorf("expected 3 events, got %d", u.Events)
	}
	assertHours(t, 2.0, u.TotalHours)

	wantDurations := []DurationPoint{{Time: t0, Hours: 0}, {Time: t1, Hours: 2}}
	if !reflect.DeepEqual(u.Durations, wantDurations) {
		t.Errorf("durations = %+v, want %+v", u.Durations, wantDurations)
	}

	wantIntervals := []IntervalPoint{
		{Time: t0, State: StateOn},
		{Time: t1, State: StateOn},
		{Time: t1, State: StateOff},
		{Time: t2, State: StateOff},
	}
	if !reflect.DeepEqual(u.Intervals, wantIntervals) {
		t.Errorf("intervals = %+v, want %+v", u.Intervals, wantIntervals)
	}
	if got := u.Transitions; got != 2 {
		t.Errorf("expected 2 transitions, got %d", got)
	}
	if u.LastState != StateOn {
		t.Errorf("expected last state ON, got %q", u.LastState)
	}
}

func TestReconstruct_StepOnlyAtTransitions(t *testing.T) {
	t0 := at(6)
	events := []Event{
		{Time: t0, State: StateOn},
		{Time: t0.Add(time.Hour), State: StateOff},
		{Time: t0.Add(2 * time.Hour), State: StateOff},
	}

	u := Reconstruct("Router Table", events, Window{Days: 30}, testNow)

	want := []IntervalPoint{
		{Time: t0, State: StateOn},
		{Time: t0.Add(time.Hour), State: StateOn},
		{Time: t0.Add(time.Hour), State: StateOff},
	}
	if !reflect.DeepEqual(u.Intervals, want) {
		t.Errorf("intervals = %+v, want %+v", u.Intervals, want)
	}
	if u.LastState != StateOff {
		t.Errorf("expected last state OFF, got %q", u.LastState)
	}
}

func TestReconstruct_LastState(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		want   State
	}{
		{"no events", nil, ""},
		{"single event", []Event{{Time: at(1), State: StateOn}}, StateOn},
		{"ends with transition", []Event{{Time: at(3), State: StateOn}, {Time: at(1), State: StateOff}}, StateOff},
		{"unordered input", []Event{{Time: at(1), State: StateOn}, {Time: at(3), State: StateOff}}, StateOn},
		{"trailing noise ignored", []Event{{Time: at(3), State: StateOff}, {Time: at(1), State: "PAUSED"}}, StateOff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Reconstruct("Planer", tt.events, Window{Days: 30}, testNow)
			if u.LastState != tt.want {
				t.Errorf("LastState = %q, want %q", u.LastState, tt.want)
			}
		})
	}
}

func TestReconstruct_EmptyResults(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
	}{
		{"nil input", nil},
		{"single event", []Event{{Time: at(1), State: StateOn}}},
		{"only one inside window", []Event{
			{Time: testNow.AddDate(0, 0, -40), State: StateOn},
			{Time: at(1), State: StateOff},
		}},
		{"noise only", []Event{
			{Time: at(3), State: "PAUSED"},
			{Time: at(2), State: "off"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Reconstruct("Router Table", tt.events, Window{Days: 30}, testNow)
			if !u.Empty() {
				t.Errorf("expected no intervals, got %d", len(u.Intervals))
			}
			if len(u.Durations) != 0 {
				t.Errorf("expected no durations, got %d", len(u.Durations))
			}
			if u.TotalHours != 0 {
				t.Errorf("expected 0 hours, got %f", u.TotalHours)
			}
		})
	}
}

func TestReconstruct_WindowDropsOldEvents(t *testing.T) {
	old := testNow.AddDate(0, 0, -31)
	events := []Event{
		{Time: old, State: StateOn},
		{Time: old.Add(5 * time.Hour), State: StateOff},
		{Time: at(4), State: StateOn},
		{Time: at(3), State: StateOff},
	}

	u := Reconstruct("Miter Saw", events, Window{Days: 30}, testNow)

	assertHours(t, 1.0, u.TotalHours)
	if !u.Since.Equal(at(4)) {
		t.Errorf("expected since %v, got %v", at(4), u.Since)
	}
	if u.Intervals[0].State != StateOn {
		t.Errorf("expected series to start at a real ON event, got %s", u.Intervals[0].State)
	}
}

func TestReconstruct_NoiseDoesNotAffectDuration(t *testing.T) {
	clean := []Event{
		{Time: at(6), State: StateOn},
		{Time: at(4), State: StateOff},
		{Time: at(2), State: StateOn},
		{Time: at(1), State: StateOff},
	}
	noisy := []Event{
		clean[0],
		{Time: at(5), State: "PAUSED"},
		clean[1],
		{Time: at(3), State: "off"},
		clean[2],
		clean[3],
	}

	want := Reconstruct("Edge Sander", clean, Window{Days: 30}, testNow)
	got := Reconstruct("Edge Sander", noisy, Window{Days: 30}, testNow)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("noise changed the result:\n got %+v\nwant %+v", got, want)
	}
	assertHours(t, 3.0, got.TotalHours)
}

func TestReconstruct_RepeatedStatesAndDuplicates(t *testing.T) {
	t0 := at(8)
	events := []Event{
		{Time: t0, State: StateOn},
		{Time: t0, State: StateOn},
		{Time: t0.Add(time.Hour), State: StateOn},
		{Time: t0.Add(3 * time.Hour), State: StateOff},
		{Time: t0.Add(3 * time.Hour), State: StateOff},
	}

	u := Reconstruct("Dust Collector", events, Window{Days: 30}, testNow)

	assertHours(t, 3.0, u.TotalHours)
	assertNonDecreasing(t, u.Durations)
	assertDurationsAtEventTimes(t, u, events)
}

func TestReconstruct_TrailingOnSegmentNotExtrapolated(t *testing.T) {
	events := []Event{
		{Time: at(5), State: StateOn},
		{Time: at(4), State: StateOff},
		{Time: at(2), State: StateOn},
	}

	u := Reconstruct("Table Saw (lathes)", events, Window{Days: 30}, testNow)

	assertHours(t, 1.0, u.TotalHours)
	last := u.Durations[len(u.Durations)-1]
	if !last.Time.Equal(at(4)) {
		t.Errorf("expected last duration point at %v, got %v", at(4), last.Time)
	}
}

func TestReconstruct_UnorderedInputIsSorted(t *testing.T) {
	events := []Event{
		{Time: at(1), State: StateOff},
		{Time: at(3), State: StateOn},
	}

	u := Reconstruct("Green Bandsaw", events, Window{Days: 30}, testNow)

	assertHours(t, 2.0, u.TotalHours)
	if !u.Since.Equal(at(3)) {
		t.Errorf("expected since %v, got %v", at(3), u.Since)
	}
}

func TestReconstruct_Properties(t *testing.T) {
	states := []State{StateOn, StateOff}
	for n := 0; n < 40; n++ {
		var events []Event
		for i := 0; i < n; i++ {
			// deterministic mix of repeats and transitions
			s := states[(i*i+n)%3%2]
			events = append(events, Event{Time: at(float64(100 - i)), State: s})
		}

		first := Reconstruct("blue-bandsaw", events, Window{Days: 30}, testNow)
		second := Reconstruct("blue-bandsaw", events, Window{Days: 30}, testNow)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("n=%d: reconstruction is not idempotent", n)
		}

		assertNonDecreasing(t, first.Durations)
		assertDurationsAtEventTimes(t, first, events)

		if n >= 2 {
			lo, hi := n-1, 2*(n-1)
			if got := len(first.Intervals); got < lo || got > hi {
				t.Errorf("n=%d: %d interval points, want between %d and %d", n, got, lo, hi)
			}
		}
	}
}

func assertHours(t *testing.T, expected, actual float64) {
	t.Helper()
	if math.Abs(expected-actual) > 0.0001 {
		t.Errorf("expected %.4f hours, got %.4f", expected, actual)
	}
}

func assertNonDecreasing(t *testing.T, points []DurationPoint) {
	t.Helper()
	for i := 1; i < len(points); i++ {
		if points[i].Hours < points[i-1].Hours {
			t.Errorf("duration decreased at %d: %f -> %f", i, points[i-1].Hours, points[i].Hours)
		}
	}
}

func assertDurationsAtEventTimes(t *testing.T, u Usage, events []Event) {
	t.Helper()
	seen := make(map[time.Time]bool, len(events))
	for _, e := range events {
		seen[e.Time] = true
	}
	for _, d := range u.Durations {
		if !seen[d.Time] {
			t.Errorf("duration point %v is not an event time", d.Time)
		}
	}
}

func TestUsage_DailyHours(t *testing.T) {
	events := []Event{
		{Time: at(50), State: StateOn},
		{Time: at(49), State: StateOff},
		{Time: at(5), State: StateOn},
		{Time: at(2), State: StateOff},
		{Time: at(1), State: StateOn},
	}
	u := Reconstruct("Planer", events, Window{Days: 30}, testNow)

	got := u.DailyHours(3)
	want := []float64{1, 0, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DailyHours(3) = %v, want %v", got, want)
	}

	if got := u.DailyHours(1); !reflect.DeepEqual(got, []float64{3}) {
		t.Errorf("DailyHours(1) = %v, want [3]", got)
	}
	if got := u.DailyHours(0); len(got) != 1 {
		t.Errorf("DailyHours(0) should yield one bucket, got %d", len(got))
	}

	empty := Usage{Until: testNow}
	if got := empty.DailyHours(2); !reflect.DeepEqual(got, []float64{0, 0}) {
		t.Errorf("empty usage DailyHours = %v", got)
	}
}
