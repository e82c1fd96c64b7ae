package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harrison/rwc/internal/logger"
	"github.com/harrison/rwc/internal/models"
	"github.com/harrison/rwc/internal/sink"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type harness struct {
	out    bytes.Buffer
	errOut bytes.Buffer
}

func (h *harness) run(t *testing.T, stdin string, opts models.Options, patterns ...string) *Outcome {
	t.Helper()
	outcome, err := Run(Config{
		Patterns: patterns,
		Options:  opts,
		Stdin:    strings.NewReader(stdin),
		Stdout:   &h.out,
		Logger:   logger.NewConsoleLogger(&h.errOut, "rwc", ""),
		Record:   true,
	})
	require.NoError(t, err)
	return outcome
}

func sortedLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	sort.Strings(lines)
	return lines
}

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestStdinHelloWorld(t *testing.T) {
	var h harness
	h.run(t, "hello world\n", models.NewOptions(true, true, true, true, false), "-")

	assert.Equal(t, "1 2 12 12\n", h.out.String())
	assert.Empty(t, h.errOut.String())
}

func TestEmptyInputIsAllZero(t *testing.T) {
	var h harness
	h.run(t, "", models.NewOptions(false, false, false, false, false), "-")
	assert.Equal(t, "0 0 0\n", h.out.String())

	h = harness{}
	h.run(t, "", models.NewOptions(true, true, true, true, false), "-")
	assert.Equal(t, "0 0 0 0\n", h.out.String())
}

func TestValidAndInvalidPattern(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "one two\n"})
	a := filepath.Join(root, "a.txt")

	var h harness
	outcome := h.run(t, "", models.NewOptions(false, false, false, false, false), a, "[")

	assert.Equal(t, []string{"1 2 8 " + a}, sortedLines(h.out.String()))
	assert.Equal(t, []string{"rwc: error: [: invalid glob pattern"}, sortedLines(h.errOut.String()))
	assert.Equal(t, 1, outcome.Summary.Files)
	assert.Equal(t, 1, outcome.Summary.Failures)
}

func TestGlobFansOutToEveryFile(t *testing.T) {
	files := map[string]string{}
	var want []string
	for i := 0; i < 40; i++ {
		name := filepath.Join(fmt.Sprintf("d%d", i%4), fmt.Sprintf("f%02d.txt", i))
		content := strings.Repeat("x\n", i)
		files[name] = content
	}
	files["skip.md"] = "not matched\n"
	root := writeFiles(t, files)
	for name, content := range files {
		if strings.HasSuffix(name, ".md") {
			continue
		}
		want = append(want, fmt.Sprintf("%d %d %s", strings.Count(content, "\n"), len(content), filepath.Join(root, name)))
	}
	sort.Strings(want)

	var h harness
	outcome := h.run(t, "", models.NewOptions(true, false, true, false, false), filepath.Join(root, "**", "*.txt"))

	assert.Equal(t, want, sortedLines(h.out.String()))
	assert.Empty(t, h.errOut.String())
	assert.Len(t, outcome.Results, 40)
}

func TestDirectoryArguments(t *testing.T) {
	root := writeFiles(t, map[string]string{"sub/a.txt": "a\n"})
	sub := filepath.Join(root, "sub")

	var h harness
	h.run(t, "", models.NewOptions(false, false, false, false, false), sub)
	assert.Empty(t, h.out.String())
	assert.Empty(t, h.errOut.String())

	h = harness{}
	h.run(t, "", models.NewOptions(false, false, false, false, true), sub)
	assert.Equal(t, "dir "+sub+"\n", h.out.String())
	assert.Empty(t, h.errOut.String())
}

func TestMissingFileDoesNotStopSiblings(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "a b c\n"})
	a := filepath.Join(root, "a.txt")
	missing := filepath.Join(root, "missing.txt")

	var h harness
	h.run(t, "", models.NewOptions(false, true, false, false, false), missing, a)

	assert.Equal(t, "3 "+a+"\n", h.out.String())
	assert.Equal(t, "rwc: error: "+missing+": no such file or directory\n", h.errOut.String())
}

func TestEveryTokenYieldsOneResult(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "a", "b.txt": "b", "c/d.txt": "d"})

	var h harness
	outcome := h.run(t, "stdin words\n", models.NewOptions(false, false, false, false, true),
		"-", filepath.Join(root, "*"), filepath.Join(root, "nope"), "{")

	// "-", a.txt, b.txt, c, nope, plus the pattern failure for "{".
	require.Len(t, outcome.Results, 6)
	assert.Equal(t, 3, outcome.Summary.Files)
	assert.Equal(t, 1, outcome.Summary.Directories)
	assert.Equal(t, 2, outcome.Summary.Failures)
}

func TestTotalLine(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "1\n2\n", "b.txt": "3\n"})

	var h harness
	_, err := Run(Config{
		Patterns: []string{filepath.Join(root, "*.txt")},
		Options:  models.NewOptions(false, false, true, false, false),
		Stdout:   &h.out,
		Total:    true,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(h.out.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "3 total", lines[2])
}

type brokenWriter struct{}

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestOutputFailureIsFatal(t *testing.T) {
	root := writeFiles(t, map[string]string{"a.txt": "a\n", "b.txt": "b\n", "c.txt": "c\n"})

	_, err := Run(Config{
		Patterns: []string{filepath.Join(root, "*.txt")},
		Options:  models.NewOptions(false, false, false, false, false),
		Stdout:   brokenWriter{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sink.ErrOutput)
}
