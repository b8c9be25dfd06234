// Package spirit models the daily devotional checklist. Each tradition has a
// fixed, ordered list of five activities; a Record remembers which tradition
// it was filled in under so past days keep their meaning after the user
// switches tradition.
package spirit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

type Tradition string

const (
	Muslim    Tradition = "Muslim"
	Christian Tradition = "Christian"
	Hinduism  Tradition = "Hinduism"
)

// DefaultTradition applies to records saved before traditions existed.
const DefaultTradition = Muslim

// ActivityCount is the length of every tradition's list.
const ActivityCount = 5

var Traditions = []Tradition{Muslim, Christian, Hinduism}

var activities = map[Tradition][ActivityCount]string{
	Muslim:    {"Fajr", "Dhuhr", "Asr", "Maghrib", "Isha"},
	Christian: {"Morning Prayer", "Bible Reading", "Grace before Meals", "Evening Prayer", "Meditation"},
	Hinduism:  {"Puja", "Meditation", "Shlokas", "Bhajan", "Aarti"},
}

var (
	ErrUnknownTradition = errors.New("unknown tradition")
	ErrUnknownActivity  = errors.New("unknown activity")
)

func (t Tradition) Valid() bool {
	_, ok := activities[t]
	return ok
}

// Activities returns the tradition's ordered list, or nil for an unknown tradition.
func (t Tradition) Activities() []string {
	list, ok := activities[t]
	if !ok {
		return nil
	}
	out := make([]string, ActivityCount)
	copy(out, list[:])
	return out
}

// ParseTradition matches case-insensitively.
func ParseTradition(s string) (Tradition, error) {
	for _, t := range Traditions {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTradition, s)
}

// Record is one day of the checklist. Done is indexed like Tradition.Activities.
type Record struct {
	Tradition Tradition
	Done      [ActivityCount]bool
}

// NewRecord marks the named activities as done. Names match case-insensitively.
func NewRecord(t Tradition, done ...string) (Record, error) {
	if !t.Valid() {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownTradition, t)
	}
	r := Record{Tradition: t}
	for _, name := range done {
		i := t.index(name)
		if i < 0 {
			return Record{}, fmt.Errorf("%w: %q is not a %s activity", ErrUnknownActivity, name, t)
		}
		r.Done[i] = true
	}
	return r, nil
}

func (t Tradition) index(name string) int {
	list, ok := activities[t]
	if !ok {
		return -1
	}
	name = strings.TrimSpace(name)
	for i, a := range list {
		if strings.EqualFold(a, name) {
			return i
		}
	}
	return -1
}

// Count returns how many activities are done out of the tradition's total.
// A record under an unknown tradition has no activities.
func (r Record) Count() (done, total int) {
	if !r.Tradition.Valid() {
		return 0, 0
	}
	for _, d := range r.Done {
		if d {
			done++
		}
	}
	return done, ActivityCount
}

// DoneActivities lists the names marked done, in tradition order.
func (r Record) DoneActivities() []string {
	var out []string
	for i, name := range r.Tradition.Activities() {
		if r.Done[i] {
			out = append(out, name)
		}
	}
	return out
}

// MarshalJSON writes the flat shape the app stores:
// {"Fajr": true, ..., "tradition": "Muslim"}.
func (r Record) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, ActivityCount+1)
	for i, name := range r.Tradition.Activities() {
		m[name] = r.Done[i]
	}
	m["tradition"] = string(r.Tradition)
	return json.Marshal(m)
}

// UnmarshalJSON accepts the legacy "religion" tag and defaults to Muslim when
// neither tag is present. Keys that are not activities of the tradition are
// ignored, and an activity holding anything but a bool counts as not done.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	tag := ""
	for _, k := range []string{"tradition", "religion"} {
		if v, ok := raw[k]; ok {
			if err := json.Unmarshal(v, &tag); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			break
		}
	}
	if tag == "" {
		tag = string(DefaultTradition)
	}

	out := Record{Tradition: Tradition(tag)}
	for i, name := range out.Tradition.Activities() {
		v, ok := raw[name]
		if !ok {
			continue
		}
		var done bool
		if err := json.Unmarshal(v, &done); err != nil {
			log.Printf("⚠️ Activity %s holds %s, counting it as not done", name, v)
			continue
		}
		out.Done[i] = done
	}
	*r = out
	return nil
}
