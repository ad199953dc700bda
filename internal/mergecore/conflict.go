package mergecore

import "strings"

// Conflict marker delimiters. Chosen to be vanishingly unlikely to collide with real document
// content, and visually distinct from Markdown's own syntax. Documents persisted to disk should
// contain these only as the result of an unresolved merge.
const (
	ConflictMarkerStart = "╔══════"
	ConflictMarkerMid   = "╠══════"
	ConflictMarkerEnd   = "╚══════"
)

// ConflictBlock is one unresolved region produced by MergeWithConflicts: ContentA is the content
// between the start and mid markers, ContentB the content between mid and end.
type ConflictBlock struct {
	LabelA   string
	LabelB   string
	ContentA []string
	ContentB []string

	// StartLine and EndLine are line indices into the merged text's own line split, start
	// inclusive and end exclusive, markers included.
	StartLine int
	EndLine   int
}

// formatConflictBlock renders a single conflict as the lines of a marker block, including the
// start/mid/end delimiters.
func formatConflictBlock(labelA, labelB string, linesA, linesB []string) []string {
	lines := make([]string, 0, len(linesA)+len(linesB)+3)
	lines = append(lines, ConflictMarkerStart+" "+labelA)
	lines = append(lines, linesA...)
	lines = append(lines, ConflictMarkerMid)
	lines = append(lines, linesB...)
	lines = append(lines, ConflictMarkerEnd+" "+labelB)
	return lines
}

// ParseConflicts scans merged text for conflict marker blocks and returns them in document order.
// A start marker without a matching mid/end marker is an unclosed block: per the core's error
// policy, it is skipped silently rather than raised, and scanning simply stops — this means
// CountConflicts (which just counts ConflictMarkerStart occurrences) may overcount a malformed
// document relative to ParseConflicts. HasUnresolvedConflicts is a hint, not a guarantee, for the
// same reason.
func ParseConflicts(merged string) []ConflictBlock {
	lines := SplitLines(merged)

	var conflicts []ConflictBlock
	i := 0
	for i < len(lines) {
		if !strings.HasPrefix(lines[i], ConflictMarkerStart) {
			i++
			continue
		}
		start := i
		labelA := strings.TrimSpace(strings.TrimPrefix(lines[i], ConflictMarkerStart))
		i++

		var contentA []string
		for i < len(lines) && !strings.HasPrefix(lines[i], ConflictMarkerMid) {
			contentA = append(contentA, lines[i])
			i++
		}
		if i >= len(lines) {
			break
		}
		i++ // skip mid marker

		var contentB []string
		for i < len(lines) && !strings.HasPrefix(lines[i], ConflictMarkerEnd) {
			contentB = append(contentB, lines[i])
			i++
		}
		if i >= len(lines) {
			break
		}
		labelB := strings.TrimSpace(strings.TrimPrefix(lines[i], ConflictMarkerEnd))
		i++

		conflicts = append(conflicts, ConflictBlock{
			LabelA:    labelA,
			LabelB:    labelB,
			ContentA:  contentA,
			ContentB:  contentB,
			StartLine: start,
			EndLine:   i,
		})
	}
	return conflicts
}

// HasUnresolvedConflicts reports whether text contains any conflict marker block.
func HasUnresolvedConflicts(text string) bool {
	for _, line := range SplitLines(text) {
		if strings.HasPrefix(line, ConflictMarkerStart) {
			return true
		}
	}
	return false
}

// CountConflicts scans text for ConflictMarkerStart line-starts. This intentionally does not
// require a well-formed block — a malformed, unclosed start marker is still counted, per the
// core's error policy (see ParseConflicts).
func CountConflicts(text string) int {
	count := 0
	for _, line := range SplitLines(text) {
		if strings.HasPrefix(line, ConflictMarkerStart) {
			count++
		}
	}
	return count
}

// ResolveConflict replaces the index-th conflict block (in ParseConflicts order) with resolution's
// content and removes its markers. resolution is one of:
//   - "A"    — keep ContentA,
//   - "B"    — keep ContentB,
//   - "both" — keep ContentA followed by ContentB,
//   - any other string — used verbatim as the replacement, split on newlines.
//
// An out-of-range index is a no-op: ResolveConflict returns text unchanged.
func ResolveConflict(text string, index int, resolution string) string {
	conflicts := ParseConflicts(text)
	if index < 0 || index >= len(conflicts) {
		return text
	}
	c := conflicts[index]
	lines := SplitLines(text)

	var replacement []string
	switch resolution {
	case "A":
		replacement = c.ContentA
	case "B":
		replacement = c.ContentB
	case "both":
		replacement = append(append([]string{}, c.ContentA...), c.ContentB...)
	default:
		replacement = SplitLines(resolution)
	}

	out := make([]string, 0, len(lines)-(c.EndLine-c.StartLine)+len(replacement))
	out = append(out, lines[:c.StartLine]...)
	out = append(out, replacement...)
	out = append(out, lines[c.EndLine:]...)
	return strings.Join(out, "\n")
}
