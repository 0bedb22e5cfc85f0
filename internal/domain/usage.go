package domain

import (
	"math"
	"sort"
	"time"
)

// Window is a trailing range of whole days ending at the time of the query.
type Window struct {
	Days int
}

// Contains reports whether t falls inside the window ending at now.
// Age is counted in whole elapsed days, so an event exactly Days old is
// retained and one Days+1 old is not.
func (w Window) Contains(now, t time.Time) bool {
	age := int(math.Floor(now.Sub(t).Hours() / 24))
	return age <= w.Days
}

// IntervalPoint is a vertex of the plotted state step function.
type IntervalPoint struct {
	Time  time.Time `json:"time"`
	State State     `json:"state"`
}

// DurationPoint is a vertex of the cumulative ON-time curve.
type DurationPoint struct {
	Time  time.Time `json:"time"`
	Hours float64   `json:"hours"`
}

// Usage is the reconstructed runtime of one tool over a window.
type Usage struct {
	Tool        string          `json:"tool"`
	Since       time.Time       `json:"since"`
	Until       time.Time       `json:"until"`
	TotalHours  float64         `json:"total_hours"`
	Events      int             `json:"events"`
	Transitions int             `json:"transitions"`
	LastState   State           `json:"last_state,omitempty"`
	Intervals   []IntervalPoint `json:"intervals"`
	Durations   []DurationPoint `json:"durations"`
}

// Empty reports whether no interval could be reconstructed.
func (u *Usage) Empty() bool {
	return len(u.Intervals) == 0
}

// Reconstruct turns an ordered event sequence into a step series of states
// and a cumulative ON-hours curve for the events inside window.
//
// Each consecutive pair (i, i+1) emits the state at t[i], plus the same state
// again at t[i+1] when the next state differs, so the series plots as flat
// steps. ON segments add t[i+1]-t[i] to the running total and emit the total
// before and after, so every duration timestamp is a retained event time.
// The last event has no successor and adds nothing.
func Reconstruct(tool string, events []Event, window Window, now time.Time) Usage {
	usage := Usage{Tool: tool, Until: now}

	kept := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.State.Valid() || !window.Contains(now, e.Time) {
			continue
		}
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Time.Before(kept[j].Time)
	})

	usage.Events = len(kept)
	if len(kept) > 0 {
		usage.Since = kept[0].Time
		usage.LastState = kept[len(kept)-1].State
	}
	if len(kept) < 2 {
		return usage
	}

	var hours float64
	for i := 0; i < len(kept)-1; i++ {
		cur, next := kept[i], kept[i+1]

		usage.Intervals = append(usage.Intervals, IntervalPoint{Time: cur.Time, State: cur.State})
		if next.State != cur.State {
			usage.Transitions++
			usage.Intervals = append(usage.Intervals, IntervalPoint{Time: next.Time, State: cur.State})
		}

		if cur.State == StateOn {
			usage.Durations = append(usage.Durations, DurationPoint{Time: cur.Time, Hours: hours})
			hours += next.Time.Sub(cur.Time).Hours()
			usage.Durations = append(usage.Durations, DurationPoint{Time: next.Time, Hours: hours})
		}
	}
	usage.TotalHours = hours

	return usage
}

// DailyHours buckets ON hours per day over the last days days, oldest first.
// A segment counts toward the day it ended in; segments ending outside the
// range are ignored.
func (u *Usage) DailyHours(days int) []float64 {
	if days < 1 {
		days = 1
	}
	buckets := make([]float64, days)
	for i := 0; i+1 < len(u.Durations); i += 2 {
		end := u.Durations[i+1]
		age := int(math.Floor(u.Until.Sub(end.Time).Hours() / 24))
		if age < 0 {
			age = 0
		}
		if age >= days {
			continue
		}
		buckets[days-1-age] += end.Hours - u.Durations[i].Hours
	}
	return buckets
}
