package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/weavemark/weavemark/internal/mergecore"
	qcli "github.com/weavemark/weavemark/internal/q/cli"
	"github.com/weavemark/weavemark/internal/simplelogger"
)

func newRootCommand() *qcli.Command {
	root := &qcli.Command{
		Name:  "weavemark",
		Short: "Inspect and merge Markdown document revisions",
		Long: "weavemark exposes the collaborative document merge core as a set of\n" +
			"standalone commands: diffing, hunking, silent token merges, conflict-marking\n" +
			"line merges, and multi-variant conflict zone detection.",
	}

	root.AddCommand(
		newDiffCommand(),
		newHunksCommand(),
		newMergeCommand(),
		newMergeLinesCommand(),
		newResolveCommand(),
		newZonesCommand(),
	)

	return root
}

func hunkTypeLabel(t mergecore.HunkType) string {
	switch t {
	case mergecore.HunkAdd:
		return "add"
	case mergecore.HunkDelete:
		return "delete"
	case mergecore.HunkModify:
		return "modify"
	default:
		return "unknown"
	}
}

func readFileArg(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func newDiffCommand() *qcli.Command {
	return &qcli.Command{
		Name:    "diff",
		Short:   "Show an inline character diff between two files",
		Example: "weavemark diff old.md new.md",
		Args:    qcli.ExactArgs(2),
		Run: func(c *qcli.Context) error {
			oldText, err := readFileArg(c.Args[0])
			if err != nil {
				return err
			}
			newText, err := readFileArg(c.Args[1])
			if err != nil {
				return err
			}
			simplelogger.Log("diff: %s (%d bytes) vs %s (%d bytes)", c.Args[0], len(oldText), c.Args[1], len(newText))

			ops := mergecore.CalculateCharDiff(oldText, newText)
			fmt.Fprintln(c.Out, mergecore.BuildInlineDiffText(ops))
			return nil
		},
	}
}

func newHunksCommand() *qcli.Command {
	return &qcli.Command{
		Name:    "hunks",
		Short:   "Group line-level changes between two files into contiguous hunks",
		Example: "weavemark hunks old.md new.md",
		Args:    qcli.ExactArgs(2),
		Run: func(c *qcli.Context) error {
			oldText, err := readFileArg(c.Args[0])
			if err != nil {
				return err
			}
			newText, err := readFileArg(c.Args[1])
			if err != nil {
				return err
			}

			hunks := mergecore.CalculateHunks(oldText, newText)
			if len(hunks) == 0 {
				fmt.Fprintln(c.Out, "no changes")
				return nil
			}
			for _, h := range hunks {
				fmt.Fprintf(c.Out, "@@ base %d-%d / modified %d-%d @@ %s\n",
					h.BaseStartLine, h.BaseEndLine, h.ModifiedStartLine, h.ModifiedEndLine, hunkTypeLabel(h.Type))
				for _, line := range h.BaseLines {
					fmt.Fprintf(c.Out, "-%s\n", line)
				}
				for _, line := range h.ModifiedLines {
					fmt.Fprintf(c.Out, "+%s\n", line)
				}
			}
			return nil
		},
	}
}

func newMergeCommand() *qcli.Command {
	return &qcli.Command{
		Name:    "merge",
		Short:   "Silently merge two edited variants of a base document",
		Long:    "merge performs a three-way token merge with no conflict markers; where edits overlap, both variants' insertions are kept (canonical's first) and any base token removed by either variant is dropped.",
		Example: "weavemark merge base.md local.md canonical.md",
		Args:    qcli.ExactArgs(3),
		Run: func(c *qcli.Context) error {
			base, err := readFileArg(c.Args[0])
			if err != nil {
				return err
			}
			local, err := readFileArg(c.Args[1])
			if err != nil {
				return err
			}
			canonical, err := readFileArg(c.Args[2])
			if err != nil {
				return err
			}

			fmt.Fprint(c.Out, mergecore.MergeText(base, local, canonical))
			return nil
		},
	}
}

func newMergeLinesCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:    "merge-lines",
		Short:   "Merge two edited variants of a base document, marking unresolved conflicts",
		Example: "weavemark merge-lines --label-a Alice --label-b Bob base.md a.md b.md",
		Args:    qcli.ExactArgs(3),
	}
	labelAFlag := cmd.Flags().String("label-a", 'a', "A", "label for the first variant in conflict blocks")
	labelBFlag := cmd.Flags().String("label-b", 'b', "B", "label for the second variant in conflict blocks")

	cmd.Run = func(c *qcli.Context) error {
		base, err := readFileArg(c.Args[0])
		if err != nil {
			return err
		}
		patchA, err := readFileArg(c.Args[1])
		if err != nil {
			return err
		}
		patchB, err := readFileArg(c.Args[2])
		if err != nil {
			return err
		}

		merged, hasConflicts, count := mergecore.MergeWithConflicts(base, patchA, patchB, *labelAFlag, *labelBFlag)
		fmt.Fprint(c.Out, merged)
		if hasConflicts {
			fmt.Fprintf(c.Err, "\n%d unresolved conflict(s)\n", count)
			return qcli.ExitError{Code: 1, Err: fmt.Errorf("%d unresolved conflict(s)", count)}
		}
		return nil
	}
	return cmd
}

func newResolveCommand() *qcli.Command {
	return &qcli.Command{
		Name:    "resolve",
		Short:   "Resolve one conflict block in a merged file by index",
		Long:    "resolution is one of \"A\", \"B\", \"both\", or an arbitrary replacement string. An out-of-range index is a no-op.",
		Example: "weavemark resolve merged.md 0 A",
		Args:    qcli.ExactArgs(3),
		Run: func(c *qcli.Context) error {
			merged, err := readFileArg(c.Args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(c.Args[1])
			if err != nil {
				return qcli.UsageError{Message: fmt.Sprintf("invalid conflict index: %s", c.Args[1])}
			}

			if parsed := len(mergecore.ParseConflicts(merged)); parsed < mergecore.CountConflicts(merged) {
				simplelogger.Log("resolve: skipped %d malformed conflict block(s) in %s", mergecore.CountConflicts(merged)-parsed, c.Args[0])
			}

			resolved := mergecore.ResolveConflict(merged, index, c.Args[2])
			fmt.Fprint(c.Out, resolved)
			return nil
		},
	}
}

func newZonesCommand() *qcli.Command {
	cmd := &qcli.Command{
		Name:    "zones",
		Short:   "Partition a base document into conflict zones across several patches",
		Long:    "Each positional argument after the base file is PATCHID=path, naming one variant's file on disk.",
		Example: "weavemark zones base.md alice=alice.md bob=bob.md",
		Args:    qcli.MinimumArgs(1),
	}
	contextLines := cmd.Flags().Int("context", 'c', 0, "lines of surrounding context to print around each conflicting zone")
	cmd.Run = func(c *qcli.Context) error {
		base, err := readFileArg(c.Args[0])
		if err != nil {
			return err
		}

		var patches []mergecore.PatchInput
		for _, arg := range c.Args[1:] {
			id, path, ok := strings.Cut(arg, "=")
			if !ok {
				return qcli.UsageError{Message: fmt.Sprintf("expected PATCHID=path, got %q", arg)}
			}
			content, err := readFileArg(path)
			if err != nil {
				return err
			}
			patches = append(patches, mergecore.PatchInput{ID: id, Content: content, AuthorName: id})
		}

		zones, err := mergecore.DetectConflictZones(c.Context, base, patches)
		if err != nil {
			return err
		}

		conflicts := 0
		for _, z := range zones {
			status := "clean"
			if z.HasConflict {
				status = "conflict"
				conflicts++
			}
			var ids []string
			for _, p := range z.Patches {
				ids = append(ids, p.PatchID)
			}
			fmt.Fprintf(c.Out, "zone %d: lines %d-%d [%s] patches=%s preview=%q\n",
				z.ID, z.StartLine, z.EndLine, status, strings.Join(ids, ","), z.Preview)
			if z.HasConflict && *contextLines > 0 {
				zctx := mergecore.GetZoneContext(base, z.StartLine, z.EndLine, *contextLines)
				for _, line := range zctx.Before {
					fmt.Fprintf(c.Out, "  | %s\n", line)
				}
				for _, line := range zctx.After {
					fmt.Fprintf(c.Out, "  | %s\n", line)
				}
			}
		}

		simplelogger.Log("zones: base=%d bytes patches=%d zones=%d conflicts=%d", len(base), len(patches), len(zones), conflicts)
		return nil
	}
	return cmd
}
