package bindgen

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/teranos/glbind/errors"
)

// CheckResult is the outcome of comparing fresh output with a file on disk.
type CheckResult struct {
	UpToDate bool
	// Diff lists changed lines, "-" for lines only on disk and "+" for lines
	// only in the fresh output.
	Diff string
}

// Check compares generated source with the file at path. Header lines naming
// the generator version are ignored so a tool upgrade alone does not count as
// drift. A missing file is reported as out of date.
func Check(path string, generated []byte) (*CheckResult, error) {
	existing, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read %s", path)
		}
		existing = nil
	}

	want := filterMetadataLines(generated)
	have := filterMetadataLines(existing)
	if want == have {
		return &CheckResult{UpToDate: true}, nil
	}
	return &CheckResult{Diff: lineDiff(have, want)}, nil
}

// Err converts an out-of-date result into an error marked ErrOutOfDate.
func (r *CheckResult) Err(path string) error {
	if r == nil || r.UpToDate {
		return nil
	}
	return errors.WithHint(
		errors.WithDetail(errors.Mark(errors.Newf("%s is out of date", path), errors.ErrOutOfDate), r.Diff),
		"run 'glbind' to regenerate the bindings")
}

// filterMetadataLines drops the "// Code generated by" line, which carries
// the generator version.
func filterMetadataLines(content []byte) string {
	var result strings.Builder
	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "// Code generated by ") {
			continue
		}
		result.WriteString(line)
		result.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return string(content)
	}
	return result.String()
}

func lineDiff(old, fresh string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, fresh)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(strings.TrimSuffix(d.Text, "\n"), "\n") {
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
