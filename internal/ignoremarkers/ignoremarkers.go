// Package ignoremarkers is the scan driver's view of ignore markers: the
// same sorted-interval index as the root package's ignore.go, but keyed on
// plain lint-id strings rather than the root package's validated LintId
// type, so this package (used by internal/scan) does not import the root
// package (which imports internal/scan).
package ignoremarkers

import "sort"

// LintIdFilter is either every id ("*") or an explicit set.
type LintIdFilter struct {
	all bool
	ids map[string]bool
}

func AllLintIdFilter() LintIdFilter { return LintIdFilter{all: true} }

func SpecificLintIdFilter(ids []string) LintIdFilter {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return LintIdFilter{ids: set}
}

func (f LintIdFilter) covers(id string) bool {
	if f.all {
		return true
	}
	return f.ids[id]
}

type marker struct {
	startByte, endByte int
	filter             LintIdFilter
}

type markerEnd struct {
	byteIndex   int
	markerIndex int
}

// IgnoreMarkers is the immutable, built set of a source file's ignore
// markers, queryable by byte offset in O(log n).
type IgnoreMarkers struct {
	markers    []marker
	markerEnds []markerEnd
}

// IsIgnored reports whether byteIndex is covered by some marker whose
// filter covers id.
func (m *IgnoreMarkers) IsIgnored(byteIndex int, id string) bool {
	if len(m.markers) == 0 {
		return false
	}
	if byteIndex < m.markers[0].startByte {
		return false
	}
	if byteIndex >= m.markerEnds[len(m.markerEnds)-1].byteIndex {
		return false
	}

	endIdx := sort.Search(len(m.markerEnds), func(i int) bool {
		return m.markerEnds[i].byteIndex >= byteIndex
	})
	firstPossible := m.markerEnds[endIdx].markerIndex

	rest := m.markers[firstPossible:]
	lastOffset := sort.Search(len(rest), func(i int) bool {
		return rest[i].startByte > byteIndex
	})
	lastPossible := firstPossible + lastOffset

	for _, mk := range m.markers[firstPossible:lastPossible] {
		if !mk.filter.covers(id) {
			continue
		}
		if byteIndex >= mk.startByte && byteIndex < mk.endByte {
			return true
		}
	}
	return false
}

// Builder accumulates (range, filter) pairs before sorting and indexing
// them into an immutable IgnoreMarkers.
type Builder struct {
	markers []marker
}

func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) Add(startByte, endByte int, filter LintIdFilter) {
	b.markers = append(b.markers, marker{startByte: startByte, endByte: endByte, filter: filter})
}

func (b *Builder) Build() *IgnoreMarkers {
	markers := b.markers
	sort.Slice(markers, func(i, j int) bool {
		if markers[i].startByte != markers[j].startByte {
			return markers[i].startByte < markers[j].startByte
		}
		return markers[i].endByte < markers[j].endByte
	})

	ends := make([]markerEnd, len(markers))
	for i, mk := range markers {
		ends[i] = markerEnd{byteIndex: mk.endByte, markerIndex: i}
	}
	sort.Slice(ends, func(i, j int) bool {
		if ends[i].byteIndex != ends[j].byteIndex {
			return ends[i].byteIndex < ends[j].byteIndex
		}
		return ends[i].markerIndex < ends[j].markerIndex
	})
	for i := len(ends) - 2; i >= 0; i-- {
		if ends[i].markerIndex > ends[i+1].markerIndex {
			ends[i].markerIndex = ends[i+1].markerIndex
		}
	}

	return &IgnoreMarkers{markers: markers, markerEnds: ends}
}
