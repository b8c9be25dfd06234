// Package calendar turns a pillar's date-keyed records into the sparse
// per-day annotations the calendar view draws. Projection is always a full
// recompute over the snapshot it is given.
package calendar

import (
	"encoding/json"
	"fmt"
	"strings"

	"mizman/internal/body"
	"mizman/internal/spirit"
)

type Marker int

const (
	None Marker = iota
	Partial
	Complete
)

var markerNames = [...]string{None: "none", Partial: "partial", Complete: "complete"}

func (m Marker) String() string {
	if int(m) < 0 || int(m) >= len(markerNames) {
		return fmt.Sprintf("Marker(%d)", int(m))
	}
	return markerNames[m]
}

func (m Marker) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *Marker) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, name := range markerNames {
		if name == s {
			*m = Marker(i)
			return nil
		}
	}
	return fmt.Errorf("unknown marker %q", s)
}

// Projector decides the marker for one record. ok=false omits the date.
type Projector[R any] func(R) (Marker, bool)

// Project applies mark to every record and keeps the dates it emits.
func Project[R any](records map[string]R, mark Projector[R]) map[string]Marker {
	out := make(map[string]Marker, len(records))
	for date, r := range records {
		if m, ok := mark(r); ok {
			out[date] = m
		}
	}
	return out
}

// SpiritMarker omits days with nothing done.
func SpiritMarker(r spirit.Record) (Marker, bool) {
	done, total := r.Count()
	switch {
	case done == 0:
		return None, false
	case done < total:
		return Partial, true
	default:
		return Complete, true
	}
}

// BodyMarker has no partial state: a day is complete or absent.
func BodyMarker(r body.Record) (Marker, bool) {
	if r.WorkoutDone {
		return Complete, true
	}
	return None, false
}

// Month filters markers to one month, given as "YYYY-MM".
func Month(markers map[string]Marker, month string) map[string]Marker {
	prefix := month + "-"
	out := make(map[string]Marker)
	for date, m := range markers {
		if strings.HasPrefix(date, prefix) {
			out[date] = m
		}
	}
	return out
}
