package vex

import (
	"sort"
	"strings"
)

// LintIdFilter is the id-filter half of an ignore marker: either every id
// ("*") or an explicit set.
type LintIdFilter struct {
	all bool
	ids []LintId
}

// AllLintIdFilter returns a filter that covers every lint id.
func AllLintIdFilter() LintIdFilter { return LintIdFilter{all: true} }

// SpecificLintIdFilter returns a filter that covers exactly ids.
func SpecificLintIdFilter(ids []LintId) LintIdFilter { return LintIdFilter{ids: ids} }

// IsEmpty reports whether the filter is an explicit, empty id set (which
// never covers any id).
func (f LintIdFilter) IsEmpty() bool { return !f.all && len(f.ids) == 0 }

func (f LintIdFilter) covers(id LintId) bool {
	if f.all {
		return true
	}
	for _, x := range f.ids {
		if x == id {
			return true
		}
	}
	return false
}

// RedundantIgnoreError reports a `vex:ignore` comment naming both "*" and
// explicit ids, which is redundant: "*" already covers everything.
type RedundantIgnoreError struct{}

func (*RedundantIgnoreError) Error() string {
	return "redundant ignore: \"*\" already covers every id, explicit ids are unreachable"
}

// ParseLintIdFilter parses the comma-separated body of a `vex:ignore`
// comment (after the `vex:ignore` prefix is stripped) into a LintIdFilter.
// Unknown or invalid ids are returned as the first error encountered.
func ParseLintIdFilter(body string) (LintIdFilter, error) {
	var (
		ids       []LintId
		starFound bool
	)
	for _, raw := range strings.Split(body, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if raw == "*" {
			starFound = true
			continue
		}
		id, err := ParseLintId(raw)
		if err != nil {
			return LintIdFilter{}, err
		}
		ids = append(ids, id)
	}
	if starFound && len(ids) > 0 {
		return LintIdFilter{}, &RedundantIgnoreError{}
	}
	if starFound {
		return AllLintIdFilter(), nil
	}
	return SpecificLintIdFilter(ids), nil
}

// ignoreMarker is a single parsed `vex:ignore` comment: the byte range of
// the statement it suppresses, and which ids it covers.
type ignoreMarker struct {
	startByte, endByte int
	filter             LintIdFilter
}

// markerEnd is IgnoreMarkers' parallel "earliest marker index still open at
// this end byte" index, built once at IgnoreMarkersBuilder.Build time.
type markerEnd struct {
	byteIndex   int
	markerIndex int
}

// IgnoreMarkers is the immutable, built set of a source file's ignore
// markers, queryable by byte offset in O(log n).
type IgnoreMarkers struct {
	markers    []ignoreMarker
	markerEnds []markerEnd
}

// IsIgnored reports whether byteIndex is covered by some marker whose
// filter covers id.
func (m *IgnoreMarkers) IsIgnored(byteIndex int, id LintId) bool {
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

	for _, marker := range m.markers[firstPossible:lastPossible] {
		if !marker.filter.covers(id) {
			continue
		}
		if byteIndex >= marker.startByte && byteIndex < marker.endByte {
			return true
		}
	}
	return false
}

// IgnoreMarkersBuilder accumulates (range, filter) pairs before sorting and
// indexing them into an immutable IgnoreMarkers.
type IgnoreMarkersBuilder struct {
	markers []ignoreMarker
}

// NewIgnoreMarkersBuilder returns an empty builder.
func NewIgnoreMarkersBuilder() *IgnoreMarkersBuilder {
	return &IgnoreMarkersBuilder{}
}

// Add records a marker covering [startByte, endByte) with filter.
func (b *IgnoreMarkersBuilder) Add(startByte, endByte int, filter LintIdFilter) {
	b.markers = append(b.markers, ignoreMarker{startByte: startByte, endByte: endByte, filter: filter})
}

// Build sorts the accumulated markers by (start, end) and computes the
// monotone end-index table IsIgnored relies on.
func (b *IgnoreMarkersBuilder) Build() *IgnoreMarkers {
	markers := b.markers
	sort.Slice(markers, func(i, j int) bool {
		if markers[i].startByte != markers[j].startByte {
			return markers[i].startByte < markers[j].startByte
		}
		return markers[i].endByte < markers[j].endByte
	})

	ends := make([]markerEnd, len(markers))
	for i, m := range markers {
		ends[i] = markerEnd{byteIndex: m.endByte, markerIndex: i}
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
