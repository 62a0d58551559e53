// Package diff renders line-level unified diffs of generated theme files.
package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	// DefaultContext is the number of unchanged lines shown around each change.
	DefaultContext = 3

	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

type lineOp struct {
	kind diffmatchpatch.Operation
	text string
}

// GenerateUnifiedDiff compares expected with actual line by line.
// Returns empty string if content is identical.
// Truncates diffs exceeding 10,000 lines with a truncation marker.
func GenerateUnifiedDiff(expected, actual []byte, expectedLabel, actualLabel string) string {
	return Unified(expected, actual, expectedLabel, actualLabel, DefaultContext)
}

// Unified is GenerateUnifiedDiff with a configurable number of context lines.
func Unified(expected, actual []byte, expectedLabel, actualLabel string, context int) string {
	if bytes.Equal(expected, actual) {
		return ""
	}
	if context < 0 {
		context = 0
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(expected), string(actual))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	ops := lineOps(diffs)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", expectedLabel)
	fmt.Fprintf(&buf, "+++ %s\n", actualLabel)

	// oldPos/newPos hold the number of lines consumed before each op.
	oldPos := make([]int, len(ops)+1)
	newPos := make([]int, len(ops)+1)
	for i, op := range ops {
		oldPos[i+1], newPos[i+1] = oldPos[i], newPos[i]
		if op.kind != diffmatchpatch.DiffInsert {
			oldPos[i+1]++
		}
		if op.kind != diffmatchpatch.DiffDelete {
			newPos[i+1]++
		}
	}

	for _, h := range hunks(ops, context) {
		start, end := h[0], h[1]
		oldCount := oldPos[end] - oldPos[start]
		newCount := newPos[end] - newPos[start]
		fmt.Fprintf(&buf, "@@ -%s +%s @@\n", hunkRange(oldPos[start], oldCount), hunkRange(newPos[start], newCount))

		for _, op := range ops[start:end] {
			switch op.kind {
			case diffmatchpatch.DiffEqual:
				buf.WriteByte(' ')
			case diffmatchpatch.DiffDelete:
				buf.WriteByte('-')
			case diffmatchpatch.DiffInsert:
				buf.WriteByte('+')
			}
			buf.WriteString(op.text)
			buf.WriteByte('\n')
		}
	}

	// Check line count and truncate if necessary
	result := buf.String()
	out := strings.Split(result, "\n")
	if len(out) > maxDiffLines {
		truncated := strings.Join(out[:maxDiffLines], "\n")
		return truncated + "\n" + truncateMessage + "\n"
	}

	return result
}

func lineOps(diffs []diffmatchpatch.Diff) []lineOp {
	var ops []lineOp
	for _, d := range diffs {
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			ops = append(ops, lineOp{kind: d.Type, text: line})
		}
	}
	return ops
}

// hunks groups changed lines into [start,end) op ranges padded with context.
// Changes separated by at most 2*context unchanged lines share a hunk.
func hunks(ops []lineOp, context int) [][2]int {
	var out [][2]int
	for i := 0; i < len(ops); i++ {
		if ops[i].kind == diffmatchpatch.DiffEqual {
			continue
		}
		start := max(0, i-context)
		last := i
		for j := i + 1; j < len(ops); j++ {
			if ops[j].kind == diffmatchpatch.DiffEqual {
				continue
			}
			if j-last-1 > 2*context {
				break
			}
			last = j
		}
		end := min(len(ops), last+1+context)
		out = append(out, [2]int{start, end})
		i = last
	}
	return out
}

func hunkRange(pos, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", pos)
	}
	if count == 1 {
		return fmt.Sprintf("%d", pos+1)
	}
	return fmt.Sprintf("%d,%d", pos+1, count)
}
