package domain

import (
	"errors"
	"sort"
	"time"
)

// MaxVersions caps how many prior contents a note keeps.
const MaxVersions = 20

var ErrVersionNotFound = errors.New("version not found")

// Version is the content a note held until Timestamp.
type Version struct {
	ID        string    `json:"_id"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Ledger is a note's version history, oldest first.
type Ledger []Version

// Append adds v as the newest entry and evicts from the front until at most
// MaxVersions remain. It returns the resulting ledger and how many entries were
// evicted.
func (l Ledger) Append(v Version) (Ledger, int) {
	next := make(Ledger, 0, len(l)+1)
	next = append(next, l...)
	next = append(next, v)

	evicted := 0
	if len(next) > MaxVersions {
		evicted = len(next) - MaxVersions
		next = next[evicted:]
	}
	return next, evicted
}

func (l Ledger) Find(id string) (Version, bool) {
	for _, v := range l {
		if v.ID == id {
			return v, true
		}
	}
	return Version{}, false
}

// NewestFirst returns a copy sorted by timestamp, most recent first. Equal
// timestamps list the later-appended entry first. The stored order is not modified.
func (l Ledger) NewestFirst() []Version {
	out := make([]Version, len(l))
	for i, v := range l {
		out[len(l)-1-i] = v
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}
