package mergecore

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/weavemark/weavemark/internal/q/uni"
)

// previewWidth is the target display width, in terminal columns, of a Zone's preview excerpt.
const previewWidth = 60

// PatchInput is one contributing variant given to DetectConflictZones: a full document string
// derived from the same base, tagged with the identity of its author.
type PatchInput struct {
	ID          string
	Content     string
	AuthorName  string
	AuthorColor string
}

// ZonePatch is a patch's contribution to a single Zone: its own slice of content spanning that
// zone's base line range, carried alongside enough of the author's identity to attribute it in a
// UI without a second lookup.
type ZonePatch struct {
	PatchID     string
	AuthorName  string
	AuthorColor string
	Content     string
}

// Zone is a contiguous span of base document lines with a shared set of modifying patches.
//
// Invariant: the Zones returned by DetectConflictZones for a given base partition it exactly —
// every line index in [0, baseLineCount) belongs to exactly one zone, in increasing StartLine
// order, with no gap between one zone's EndLine+1 and the next's StartLine.
type Zone struct {
	ID          int
	StartLine   int
	EndLine     int // inclusive
	Patches     []ZonePatch
	HasConflict bool
	Preview     string
}

// DetectConflictZones partitions base into zones given the set of patches, each a full document
// independently derived from base. Patches are diffed against base concurrently, since each
// diff is independent of the others; the resulting zone list is otherwise fully deterministic and
// does not depend on diff completion order.
func DetectConflictZones(ctx context.Context, base string, patches []PatchInput) ([]Zone, error) {
	baseLines := SplitLines(base)
	if len(patches) == 0 {
		if base == "" {
			return nil, nil
		}
		return []Zone{{ID: 0, StartLine: 0, EndLine: len(baseLines) - 1, Preview: previewOf(baseLines)}}, nil
	}

	alignments := make([]patchAlignment, len(patches))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range patches {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			alignments[i] = buildPatchAlignment(baseLines, p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// touching is the set of patch indices touching each base line, encoded as a bitmask —
	// patch counts in practice are small enough that this never needs more than one uint64.
	touching := make([]uint64, len(baseLines))
	for pi, al := range alignments {
		for line, touched := range al.touched {
			if touched {
				touching[line] |= 1 << uint(pi)
			}
		}
	}

	var zones []Zone
	i := 0
	for i < len(baseLines) {
		start := i
		key := touching[i]
		for i < len(baseLines) && touching[i] == key {
			i++
		}
		zones = append(zones, Zone{StartLine: start, EndLine: i - 1})
	}

	// Merge adjacent zones that share at least one modifying patch, so a single logical edit
	// split across an authorship transition is not fragmented.
	merged := make([]Zone, 0, len(zones))
	masks := make([]uint64, 0, len(zones))
	for idx, z := range zones {
		mask := touching[z.StartLine]
		if len(merged) > 0 && masks[len(masks)-1]&mask != 0 {
			merged[len(merged)-1].EndLine = z.EndLine
			masks[len(masks)-1] |= mask
			continue
		}
		merged = append(merged, zones[idx])
		masks = append(masks, mask)
	}

	out := make([]Zone, len(merged))
	for zi, z := range merged {
		mask := masks[zi]
		var zonePatches []ZonePatch
		conflictCount := 0
		for pi, al := range alignments {
			if mask&(1<<uint(pi)) == 0 {
				continue
			}
			conflictCount++
			zonePatches = append(zonePatches, ZonePatch{
				PatchID:     al.patch.ID,
				AuthorName:  al.patch.AuthorName,
				AuthorColor: al.patch.AuthorColor,
				Content:     al.contentForRange(z.StartLine, z.EndLine),
			})
		}
		out[zi] = Zone{
			ID:          zi,
			StartLine:   z.StartLine,
			EndLine:     z.EndLine,
			Patches:     zonePatches,
			HasConflict: conflictCount >= 2,
			Preview:     previewOf(baseLines[z.StartLine : z.EndLine+1]),
		}
	}

	if err := validateZonePartition(out, len(baseLines)); err != nil {
		panic(fmt.Errorf("DetectConflictZones: %w", err))
	}

	return out, nil
}

// previewOf returns a single-line excerpt of lines: the first line that is not empty or
// whitespace-only, truncated to
// previewWidth display columns with a trailing ellipsis if it was cut.
func previewOf(lines []string) string {
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		return truncateForPreview(line)
	}
	return ""
}

// truncateForPreview grapheme-clusters text down to at most previewWidth display columns,
// appending an ellipsis when truncation actually occurred. Using grapheme clusters (not bytes or
// runes) keeps combining marks and multi-codepoint emoji intact at the cut point.
func truncateForPreview(text string) string {
	if uni.TextWidth(text, nil) <= previewWidth {
		return text
	}
	var b strings.Builder
	width := 0
	it := uni.NewGraphemeIterator(text, nil)
	for it.Next() {
		w := it.TextWidth()
		if width+w > previewWidth-1 {
			break
		}
		b.WriteString(string(it.Value()))
		width += w
	}
	b.WriteRune('…')
	return b.String()
}

// patchAlignment is the internal per-patch diff state against base, kept around so a zone's
// content slice for that patch can be recovered after zone boundaries are fixed.
type patchAlignment struct {
	patch   PatchInput
	lines   []string
	matched map[int]int // base line index -> this patch's own line index
	anchors []int       // matched's keys, ascending
	touched []bool      // per base line index: does this patch modify it
}

func buildPatchAlignment(baseLines []string, p PatchInput) patchAlignment {
	patchLines := SplitLines(p.Content)
	matched := pairMapByA(LCSPairs(baseLines, patchLines))

	anchors := make([]int, 0, len(matched))
	for i := range baseLines {
		if _, ok := matched[i]; ok {
			anchors = append(anchors, i)
		}
	}

	touched := make([]bool, len(baseLines))
	for i := range baseLines {
		if _, ok := matched[i]; !ok {
			touched[i] = true
		}
	}

	prevAnchor, prevPatchIdx := -1, -1
	flushGap := func(nextAnchor, nextPatchIdx int) {
		if nextPatchIdx-prevPatchIdx <= 1 {
			return // no unmatched patch lines in this gap
		}
		if prevAnchor >= 0 {
			touched[prevAnchor] = true
		}
		if nextAnchor < len(baseLines) {
			touched[nextAnchor] = true
		}
	}
	for _, a := range anchors {
		flushGap(a, matched[a])
		prevAnchor, prevPatchIdx = a, matched[a]
	}
	flushGap(len(baseLines), len(patchLines))

	return patchAlignment{patch: p, lines: patchLines, matched: matched, anchors: anchors, touched: touched}
}

// contentForRange returns this patch's own line content corresponding to base's [startLine,
// endLine] inclusive range: lines mapped directly where the boundary is itself a matched anchor,
// widened to include adjacent unmatched (inserted) patch lines otherwise.
func (pa patchAlignment) contentForRange(startLine, endLine int) string {
	patchStart := 0
	for _, a := range pa.anchors {
		if a < startLine {
			patchStart = pa.matched[a] + 1
		} else {
			break
		}
	}
	if pi, ok := pa.matched[startLine]; ok {
		patchStart = pi
	}

	patchEnd := len(pa.lines) - 1
	for i := len(pa.anchors) - 1; i >= 0; i-- {
		a := pa.anchors[i]
		if a > endLine {
			patchEnd = pa.matched[a] - 1
		} else {
			break
		}
	}
	if pi, ok := pa.matched[endLine]; ok {
		patchEnd = pi
	}

	if patchStart > patchEnd {
		return ""
	}
	return strings.Join(pa.lines[patchStart:patchEnd+1], "\n")
}

// ExtractZoneContent returns the joined slice of text's lines [startLine, endLine] inclusive.
func ExtractZoneContent(text string, startLine, endLine int) string {
	lines := SplitLines(text)
	startLine, endLine = clampRange(startLine, endLine, len(lines))
	if startLine > endLine {
		return ""
	}
	return strings.Join(lines[startLine:endLine+1], "\n")
}

// ReplaceZoneContent splits text into lines, replaces the [startLine, endLine] inclusive slice
// with replacement's own lines, and rejoins. Replacing multiple zones in the same document
// requires processing them from highest line index to lowest, since each replacement can change
// every subsequent line index.
func ReplaceZoneContent(text string, startLine, endLine int, replacement string) string {
	lines := SplitLines(text)
	startLine, endLine = clampRange(startLine, endLine, len(lines))
	if startLine > len(lines) {
		startLine = len(lines)
	}
	if endLine < startLine-1 {
		endLine = startLine - 1
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:startLine]...)
	if startLine <= endLine {
		out = append(out, SplitLines(replacement)...)
	}
	out = append(out, lines[endLine+1:]...)
	return strings.Join(out, "\n")
}

// ZoneContext is the surrounding-lines view returned by GetZoneContext.
type ZoneContext struct {
	Before []string
	After  []string
}

// GetZoneContext returns up to contextLines lines immediately before and after the [startLine,
// endLine] inclusive zone in text, clamped to the document's bounds.
func GetZoneContext(text string, startLine, endLine, contextLines int) ZoneContext {
	lines := SplitLines(text)
	startLine, endLine = clampRange(startLine, endLine, len(lines))

	beforeStart := startLine - contextLines
	if beforeStart < 0 {
		beforeStart = 0
	}
	afterEnd := endLine + contextLines
	if afterEnd >= len(lines) {
		afterEnd = len(lines) - 1
	}

	var ctx ZoneContext
	if beforeStart < startLine {
		ctx.Before = append([]string(nil), lines[beforeStart:startLine]...)
	}
	if endLine+1 <= afterEnd {
		ctx.After = append([]string(nil), lines[endLine+1:afterEnd+1]...)
	}
	return ctx
}

func clampRange(startLine, endLine, lineCount int) (int, int) {
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= lineCount {
		endLine = lineCount - 1
	}
	return startLine, endLine
}

// MergeZonePatches computes a conflicting zone's initial auto-merged draft from its contributing
// patches' content slices. Exactly two patches merge directly; three or more fold sequentially,
// each additional patch merged against the running result of the ones before it.
func MergeZonePatches(baseSlice string, patches []ZonePatch) (merged string, conflictCount int) {
	switch len(patches) {
	case 0:
		return baseSlice, 0
	case 1:
		return patches[0].Content, 0
	}

	running := patches[0].Content
	runningLabel := patches[0].AuthorName
	total := 0
	for _, p := range patches[1:] {
		var count int
		running, _, count = MergeWithConflicts(baseSlice, running, p.Content, runningLabel, p.AuthorName)
		total += count
		runningLabel = runningLabel + "+" + p.AuthorName
	}
	return running, total
}

// ZoneResolutions maps a Zone's ID to its user-resolved content. A zone with no entry uses its
// initial auto-computed content instead.
type ZoneResolutions map[int]string

// AssembleMerge produces the final merged document: starting from the first patch's full content
// as a scratch copy, it overwrites each zone from the highest StartLine down to the lowest (so
// earlier replacements never invalidate later line indices) with either the zone's resolution, or
// — for a clean zone with exactly one modifying patch — that patch's own content slice. A
// conflicting zone with no resolution falls back to its own auto-computed merge draft rather than
// whatever happens to occupy that line range in patches[0].
func AssembleMerge(base string, patches []PatchInput, zones []Zone, resolutions ZoneResolutions) string {
	if len(patches) == 0 {
		return ""
	}
	scratch := patches[0].Content
	baseLines := SplitLines(base)

	for i := len(zones) - 1; i >= 0; i-- {
		z := zones[i]
		switch {
		case z.HasConflict:
			if res, ok := resolutions[z.ID]; ok {
				scratch = ReplaceZoneContent(scratch, z.StartLine, z.EndLine, res)
			} else {
				baseSlice := strings.Join(baseLines[z.StartLine:z.EndLine+1], "\n")
				draft, _ := MergeZonePatches(baseSlice, z.Patches)
				scratch = ReplaceZoneContent(scratch, z.StartLine, z.EndLine, draft)
			}
		case len(z.Patches) == 1:
			scratch = ReplaceZoneContent(scratch, z.StartLine, z.EndLine, z.Patches[0].Content)
		}
	}

	return scratch
}
