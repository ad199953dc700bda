// Package mergecore is a pure, deterministic text-merge engine: it takes a base document and one
// or more independently edited variants and produces merged text, with conflicts localized into
// independently-resolvable zones.
//
// The package is organized leaf-first:
//   - Tokenize/SplitLines split text into word/whitespace tokens and into lines.
//   - LCSPairs computes the longest common subsequence between two token (or line) arrays.
//   - CalculateCharDiff produces an add/delete/equal DiffOp sequence from two strings, for UI
//     and patch previews.
//   - CalculateHunks groups line-level edit operations between two texts into contiguous Hunks.
//   - MergeText performs a silent three-way token merge (no conflict markers).
//   - MergeWithConflicts performs a three-way line merge that emits delimited conflict blocks
//     where two variants changed the same region differently.
//   - DetectConflictZones partitions a base document into contiguous Zones across N variants,
//     each zone clean (at most one variant touched it) or conflicting (two or more did).
//
// Determinism: every function here is a pure function of its arguments. There are no shared
// caches, no global mutable state, and no randomness. Two calls with the same arguments,
// concurrent or not, always return equal results. This matters because the exact placement of a
// tie-broken diff or the exact wording of a conflict block is user-visible and must reproduce
// identically across runs and across machines.
//
// Getting a diff:
//
//	ops := mergecore.CalculateCharDiff(oldText, newText)
//	fmt.Println(mergecore.BuildInlineDiffText(ops))
//
// Merging three versions of a document, accepting non-overlapping edits silently:
//
//	merged := mergecore.MergeText(base, local, canonical)
//
// Merging with conflict markers when two edits collide:
//
//	merged, hasConflicts, _ := mergecore.MergeWithConflicts(base, patchA, patchB, "Alice", "Bob")
//	if hasConflicts {
//		blocks := mergecore.ParseConflicts(merged)
//		// ... present blocks to the user, then mergecore.ResolveConflict per block.
//	}
//
// Non-goals: this package does not render anything, persist anything, talk to a network, or
// understand Markdown formatting — every string it touches is opaque UTF-8 text. It is a
// snapshot-based merge engine, not a CRDT or operational-transform engine.
package mergecore
