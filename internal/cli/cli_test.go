package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weavemark/weavemark/internal/mergecore"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (code int, out, errOut string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code, err := Run(append([]string{"weavemark"}, args...), &RunOptions{Out: &outBuf, Err: &errBuf})
	if err != nil {
		require.NotEqual(t, 0, code)
	}
	return code, outBuf.String(), errBuf.String()
}

func TestRunDiff(t *testing.T) {
	dir := t.TempDir()
	oldFile := writeTempFile(t, dir, "old.md", "hello world")
	newFile := writeTempFile(t, dir, "new.md", "hello brave world")

	code, out, _ := runCLI(t, "diff", oldFile, newFile)
	require.Equal(t, 0, code)
	require.Contains(t, out, "brave")
}

func TestRunHunksNoChanges(t *testing.T) {
	dir := t.TempDir()
	a := writeTempFile(t, dir, "a.md", "same\ntext")
	b := writeTempFile(t, dir, "b.md", "same\ntext")

	code, out, _ := runCLI(t, "hunks", a, b)
	require.Equal(t, 0, code)
	require.Contains(t, out, "no changes")
}

func TestRunMergeSilent(t *testing.T) {
	dir := t.TempDir()
	base := writeTempFile(t, dir, "base.md", "one two three four")
	local := writeTempFile(t, dir, "local.md", "one three four")
	canon := writeTempFile(t, dir, "canon.md", "one two three")

	code, out, _ := runCLI(t, "merge", base, local, canon)
	require.Equal(t, 0, code)
	require.Equal(t, "one three", out)
}

func TestRunMergeLinesReportsConflict(t *testing.T) {
	dir := t.TempDir()
	base := writeTempFile(t, dir, "base.md", "A\nB\nC")
	a := writeTempFile(t, dir, "a.md", "A\nX\nC")
	b := writeTempFile(t, dir, "b.md", "A\nY\nC")

	code, out, errOut := runCLI(t, "merge-lines", "--label-a", "Alice", "--label-b", "Bob", base, a, b)
	require.Equal(t, 1, code)
	require.Contains(t, out, "Alice")
	require.Contains(t, out, "Bob")
	require.Contains(t, errOut, "1 unresolved conflict")
}

func TestRunMergeLinesClean(t *testing.T) {
	dir := t.TempDir()
	base := writeTempFile(t, dir, "base.md", "A\nB\nC")
	a := writeTempFile(t, dir, "a.md", "A\nX\nC")
	b := writeTempFile(t, dir, "b.md", "A\nB\nC")

	code, out, _ := runCLI(t, "merge-lines", base, a, b)
	require.Equal(t, 0, code)
	require.Equal(t, "A\nX\nC", out)
}

func TestRunResolve(t *testing.T) {
	dir := t.TempDir()
	conflictText := "A\n" + mergecore.ConflictMarkerStart + " Alice\nX\n" + mergecore.ConflictMarkerMid + "\nY\n" + mergecore.ConflictMarkerEnd + " Bob\nC"
	merged := writeTempFile(t, dir, "merged.md", conflictText)

	code, out, _ := runCLI(t, "resolve", merged, "0", "A")
	require.Equal(t, 0, code)
	require.Equal(t, "A\nX\nC", out)
}

func TestRunZones(t *testing.T) {
	dir := t.TempDir()
	base := writeTempFile(t, dir, "base.md", "line0\nline1\nline2\nline3")
	alice := writeTempFile(t, dir, "alice.md", "line0\nCHANGED\nline2\nline3")

	code, out, _ := runCLI(t, "zones", base, "alice="+alice)
	require.Equal(t, 0, code)
	require.Contains(t, out, "zone 0")
	require.Contains(t, out, "alice")
}

func TestRunZonesWithContext(t *testing.T) {
	dir := t.TempDir()
	base := writeTempFile(t, dir, "base.md", "A\nB\nC\nD\nE")
	alice := writeTempFile(t, dir, "alice.md", "A\nB\nX\nD\nE")
	bob := writeTempFile(t, dir, "bob.md", "A\nB\nY\nD\nE")

	code, out, _ := runCLI(t, "zones", "--context", "1", base, "alice="+alice, "bob="+bob)
	require.Equal(t, 0, code)
	require.Contains(t, out, "[conflict]")
	require.Contains(t, out, "| A")
	require.Contains(t, out, "| E")
}

func TestRunUnknownCommandIsUsageError(t *testing.T) {
	code, _, errOut := runCLI(t, "bogus")
	require.Equal(t, 2, code)
	require.Contains(t, errOut, "unknown subcommand")
}
