package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so that executions of the
// shared command tree do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type cli struct {
	t  *testing.T
	db string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	for _, env := range []string{"CURRIMAP_DB", "CURRIMAP_CURRICULA", "CURRIMAP_CURRICULUM", "CURRIMAP_LOG_LEVEL"} {
		t.Setenv(env, "")
	}
	return &cli{t: t, db: filepath.Join(dir, "currimap.db")}
}

// run executes the root command with args and returns stdout.
func (c *cli) run(stdin string, args ...string) (string, error) {
	c.t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--db", c.db, "--log-level", "error"}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run("", args...)
	require.NoError(c.t, err, "currimap %s", strings.Join(args, " "))
	return out
}

func TestCurriculaList(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun("curricula", "list")
	assert.Contains(t, out, "comp-eng-tec *")
	assert.Contains(t, out, "Ingeniería en Computación")
}

func TestStatusAndCourseList(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun("status", "set", "ic1802", "in-progress")
	assert.Contains(t, out, "IC1802 → In progress")

	out = c.mustRun("course", "list", "--block", "1")
	assert.Contains(t, out, "In progress")
	assert.NotContains(t, out, "IC2001")

	out = c.mustRun("course", "list", "--status", "in-progress")
	assert.Contains(t, out, "IC1802")
	assert.NotContains(t, out, "IC1803")
}

func TestStatusSetRefusesLockedCourse(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "status", "set", "IC2101", "completed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prerequisite IC1802")

	out := c.mustRun("status", "set", "IC2101", "completed", "--force", "--grade", "85")
	assert.Contains(t, out, "IC2101 → Completed")

	out = c.mustRun("course", "show", "IC2101")
	assert.Contains(t, out, "Grade:    85.0")
	assert.Contains(t, out, "Unlocks")
	assert.Contains(t, out, "IC3101")
}

func TestCycleAndAvailable(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "status", "cycle", "IC2400")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IC2400 needs prerequisite IC1400")

	c.mustRun("status", "cycle", "IC1400")
	out := c.mustRun("status", "toggle", "IC1400")
	assert.Contains(t, out, "IC1400 → Completed")

	out = c.mustRun("available")
	assert.Contains(t, out, "IC2400")
	assert.NotContains(t, out, "IC1400")
}

func TestHistoryStatsAndReset(t *testing.T) {
	c := newCLI(t)

	c.mustRun("status", "set", "MA1403", "completed")
	c.mustRun("status", "grade", "MA1403", "92.5")

	out := c.mustRun("history")
	assert.Contains(t, out, "MA1403")
	assert.Contains(t, out, "92.5")

	out = c.mustRun("stats")
	assert.Contains(t, out, "4/58 credits")

	out, err := c.run("n\n", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Contains(t, c.mustRun("stats"), "4/58 credits")

	c.mustRun("reset", "--yes")
	assert.Contains(t, c.mustRun("stats"), "0/58 credits")
	assert.Contains(t, c.mustRun("history", "--limit", "1"), "progress reset")
}

func TestCurriculaValidate(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	require.NoError(t, os.WriteFile(good, []byte(`
id: tiny
name: Tiny
blocks:
  - id: 1
    name: One
    totalCredits: 3
    courses:
      - {code: T1, name: First, credits: 3}
`), 0o644))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(`
id: broken
name: Broken
blocks:
  - id: 1
    name: One
    totalCredits: 3
    courses:
      - {code: B1, name: First, credits: 3, prerequisites: [MISSING]}
`), 0o644))

	out, err := c.run("", "curricula", "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, out, "✓ "+good)
	assert.Contains(t, out, "✗ "+bad)
	assert.Contains(t, err.Error(), "1 invalid document")
}

func TestCurriculaDir(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(`
id: tiny
name: Tiny
blocks:
  - id: 1
    name: One
    totalCredits: 3
    courses:
      - {code: T1, name: First, credits: 3}
`), 0o644))

	out := c.mustRun("--curricula", dir, "curricula", "list")
	assert.Contains(t, out, "tiny")
	assert.NotContains(t, out, "comp-eng-tec")

	c.mustRun("--curricula", dir, "--curriculum", "tiny", "status", "set", "T1", "completed")
	assert.Contains(t, c.mustRun("--curricula", dir, "--curriculum", "tiny", "stats"), "3/3 credits")
}

func TestUnknownCurriculum(t *testing.T) {
	c := newCLI(t)

	_, err := c.run("", "--curriculum", "nope", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "comp-eng-tec")
}

func TestGradeRejectsNonFiniteValues(t *testing.T) {
	c := newCLI(t)
	c.mustRun("status", "set", "IC1802", "completed", "--grade", "70")

	for _, raw := range []string{"NaN", "Inf", "-Inf"} {
		_, err := c.run("", "status", "grade", "IC1802", raw)
		require.Error(t, err, raw)

		_, err = c.run("", "status", "set", "IC1803", "completed", "--grade", raw)
		require.Error(t, err, raw)
	}

	out := c.mustRun("course", "show", "IC1802")
	assert.Contains(t, out, "Grade:    70.0")
	assert.NotContains(t, c.mustRun("course", "list", "--status", "completed"), "IC1803")
}

func TestLowercaseCourseCodes(t *testing.T) {
	c := newCLI(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lc.yaml"), []byte(`
id: lc
name: Lowercase
blocks:
  - id: 1
    name: One
    totalCredits: 7
    courses:
      - {code: cs101, name: Intro, credits: 3}
      - {code: cs102, name: Follow-up, credits: 4, prerequisites: [cs101]}
`), 0o644))
	args := func(rest ...string) []string {
		return append([]string{"--curricula", dir, "--curriculum", "lc"}, rest...)
	}

	out := c.mustRun(args("status", "set", "cs101", "completed")...)
	assert.Contains(t, out, "cs101 → Completed")

	out = c.mustRun(args("status", "cycle", "CS102")...)
	assert.Contains(t, out, "cs102 → In progress")

	c.mustRun(args("status", "grade", "cs101", "88")...)
	assert.Contains(t, c.mustRun(args("course", "show", "cs101")...), "Grade:    88.0")
	assert.Contains(t, c.mustRun(args("history", "--course", "Cs101")...), "cs101")

	_, err := c.run("", args("status", "set", "cs999", "completed")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "course cs999 is not part of lc")
}
