package vex

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Location pinpoints a byte range within a source file, used both as an
// irritation's own `at` location and as a `show_also` cross-reference.
type Location struct {
	Path       PrettyPath
	StartByte  int
	EndByte    int
	StartLine  int // 0-indexed, for display
	Source     string
	Label      string
}

// Irritation is a single warning emitted by a scriptlet via vex.warn. Id
// identifies the lint that raised it; Group, if non-zero, is the lint's
// declared group for the purposes of WarningFilter.IsActiveWithGroup.
//
// At is the irritation's primary location. A warning may have no location
// at all (At == nil), in which case it is never checked
// against ignore markers and is rendered without a source excerpt.
type Irritation struct {
	Id       LintId
	Group    GroupId
	Message  string
	Info     string
	At       *Location
	ShowAlso []Location
}

// HasLocation reports whether the irritation carries an `at` location.
func (i Irritation) HasLocation() bool { return i.At != nil }

// Compare orders irritations by (path, start byte, end byte, id), the tie
// break used when multiple irritations land at the same location.
func (i Irritation) Compare(other Irritation) int {
	pa, pb := i.sortPath(), other.sortPath()
	if c := pa.Compare(pb); c != 0 {
		return c
	}
	sa, sb := i.sortStart(), other.sortStart()
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	ea, eb := i.sortEnd(), other.sortEnd()
	switch {
	case ea < eb:
		return -1
	case ea > eb:
		return 1
	}
	return i.Id.id.Compare(other.Id.id)
}

func (i Irritation) sortPath() PrettyPath {
	if i.At == nil {
		return PrettyPath{}
	}
	return i.At.Path
}

func (i Irritation) sortStart() int {
	if i.At == nil {
		return 0
	}
	return i.At.StartByte
}

func (i Irritation) sortEnd() int {
	if i.At == nil {
		return 0
	}
	return i.At.EndByte
}

var (
	colorTitle = color.New(color.FgYellow, color.Bold)
	colorOrig  = color.New(color.FgBlue)
	colorGuide = color.New(color.FgBlue, color.Bold)
)

// Render produces a framed, human-readable rendering of the irritation: a
// title line naming the lint id and message, followed by a source excerpt
// for `at` and every `show_also` reference, and a trailing info line if
// present.
func (i Irritation) Render(noColor bool) string {
	original := color.NoColor
	defer func() { color.NoColor = original }()
	if noColor {
		color.NoColor = true
	}

	var out strings.Builder
	out.WriteString(colorTitle.Sprintf("warning[%s]: ", i.Id.String()))
	out.WriteString(i.Message)
	out.WriteString("\n")

	if i.At != nil {
		i.renderLocation(&out, *i.At)
	}
	for _, loc := range i.ShowAlso {
		i.renderLocation(&out, loc)
	}
	if i.Info != "" {
		out.WriteString(colorGuide.Sprint("  = "))
		out.WriteString(i.Info)
		out.WriteString("\n")
	}
	return out.String()
}

func (i Irritation) renderLocation(out *strings.Builder, loc Location) {
	fmt.Fprintf(out, "  %s %s:%d\n", colorGuide.Sprint("-->"), loc.Path, loc.StartLine+1)
	if loc.Source == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(loc.Source, "\n"), "\n") {
		out.WriteString(colorOrig.Sprint("  | "))
		out.WriteString(line)
		out.WriteString("\n")
	}
	if loc.Label != "" {
		out.WriteString(colorGuide.Sprint("  = "))
		out.WriteString(loc.Label)
		out.WriteString("\n")
	}
}

func (i Irritation) String() string { return i.Render(true) }
