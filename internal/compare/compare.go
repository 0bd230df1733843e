// Package compare diffs two CSV exports line by line. Each line of an
// export is one row, so the result reads as rows added and removed.
package compare

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of a diff line
type LineType int

const (
	LineContext LineType = iota
	LineAdd
	LineDelete
)

// Line is one row of the comparison.
type Line struct {
	Type    LineType
	Content string
}

// Hunk is a run of changes with surrounding context rows.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Result summarizes the comparison of two exports.
type Result struct {
	// HeaderChanged is set when the first lines (column labels) differ.
	HeaderChanged bool
	Added         int
	Removed       int
	Hunks         []Hunk
}

// Equal reports whether the exports are identical.
func (r Result) Equal() bool {
	return r.Added == 0 && r.Removed == 0
}

// Exports compares two CSV exports, keeping contextLines unchanged rows
// around each change.
func Exports(oldContent, newContent string, contextLines int) Result {
	lines := diffLines(normalize(oldContent), normalize(newContent))

	var res Result
	for _, l := range lines {
		switch l.Type {
		case LineAdd:
			res.Added++
		case LineDelete:
			res.Removed++
		}
	}
	res.HeaderChanged = firstLine(oldContent) != firstLine(newContent)
	res.Hunks = groupIntoHunks(lines, contextLines)
	return res
}

func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	if s != "" && !strings.HasSuffix(s, "\n") {
		s += "\n"
	}
	return s
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(normalize(s), "\n")
	return line
}

func diffLines(oldContent, newContent string) []Line {
	dmp := diffmatchpatch.New()

	// Line mode: each distinct row becomes one rune
	oldRunes, newRunes, lineArray := dmp.DiffLinesToRunes(oldContent, newContent)
	diffs := dmp.DiffMainRunes(oldRunes, newRunes, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var lines []Line
	for _, diff := range diffs {
		var lineType LineType
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			lineType = LineAdd
		case diffmatchpatch.DiffDelete:
			lineType = LineDelete
		default:
			lineType = LineContext
		}
		for _, content := range strings.SplitAfter(diff.Text, "\n") {
			if content == "" {
				continue
			}
			lines = append(lines, Line{Type: lineType, Content: strings.TrimSuffix(content, "\n")})
		}
	}
	return lines
}

// groupIntoHunks cuts the line list into hunks. Changes separated by more
// than 2*contextLines unchanged rows go to separate hunks.
func groupIntoHunks(lines []Line, contextLines int) []Hunk {
	var (
		hunks   []Hunk
		current *Hunk
		oldLine = 1
		newLine = 1
		quiet   = 0 // unchanged rows since the last change
	)

	for i, line := range lines {
		isChange := line.Type != LineContext

		if isChange && current != nil && quiet > contextLines*2 {
			trimTrailing(current, quiet-contextLines)
			hunks = append(hunks, *current)
			current = nil
		}

		if isChange && current == nil {
			start := max(i-contextLines, 0)
			h := Hunk{OldStart: oldLine - (i - start), NewStart: newLine - (i - start)}
			for _, ctx := range lines[start:i] {
				h.Lines = append(h.Lines, ctx)
				h.OldCount++
				h.NewCount++
			}
			current = &h
		}

		if current != nil {
			current.Lines = append(current.Lines, line)
			switch line.Type {
			case LineContext:
				current.OldCount++
				current.NewCount++
			case LineAdd:
				current.NewCount++
			case LineDelete:
				current.OldCount++
			}
		}

		switch line.Type {
		case LineContext:
			oldLine++
			newLine++
			quiet++
		case LineAdd:
			newLine++
			quiet = 0
		case LineDelete:
			oldLine++
			quiet = 0
		}
	}

	if current != nil {
		trimTrailing(current, quiet-contextLines)
		hunks = append(hunks, *current)
	}
	return hunks
}

// trimTrailing drops n trailing context lines from h.
func trimTrailing(h *Hunk, n int) {
	if n <= 0 {
		return
	}
	h.Lines = h.Lines[:len(h.Lines)-n]
	h.OldCount -= n
	h.NewCount -= n
}
