// Package textfmt implements the markdown formatting helpers of the block
// editor toolbar. Offsets are counted in runes.
package textfmt

// Placeholder is inserted between the markers when nothing is selected.
const Placeholder = "text"

// Result is the edited text and the selection the editor should show.
type Result struct {
	Text           string `json:"text"`
	SelectionStart int    `json:"selection_start"`
	SelectionEnd   int    `json:"selection_end"`
}

// Wrap surrounds the selection [start, end) with before and after, e.g. "**"
// for bold. With an empty selection Placeholder is wrapped instead. The
// returned selection covers the wrapped text, markers excluded.
func Wrap(text string, start, end int, before, after string) Result {
	runes := []rune(text)
	start, end = clampRange(len(runes), start, end)

	selected := []rune(Placeholder)
	if start != end {
		selected = runes[start:end]
	}

	out := make([]rune, 0, len(runes)+len(before)+len(after)+len(selected))
	out = append(out, runes[:start]...)
	out = append(out, []rune(before)...)
	out = append(out, selected...)
	out = append(out, []rune(after)...)
	out = append(out, runes[end:]...)

	cursor := start + len([]rune(before))
	return Result{
		Text:           string(out),
		SelectionStart: cursor,
		SelectionEnd:   cursor + len(selected),
	}
}

// PrefixLine inserts prefix, e.g. "# " or "- ", at the start of the line
// holding cursor and moves the cursor past it.
func PrefixLine(text string, cursor int, prefix string) Result {
	runes := []rune(text)
	cursor, _ = clampRange(len(runes), cursor, cursor)

	lineStart := 0
	for i := cursor - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			lineStart = i + 1
			break
		}
	}

	p := []rune(prefix)
	out := make([]rune, 0, len(runes)+len(p))
	out = append(out, runes[:lineStart]...)
	out = append(out, p...)
	out = append(out, runes[lineStart:]...)

	cursor += len(p)
	return Result{Text: string(out), SelectionStart: cursor, SelectionEnd: cursor}
}

func clampRange(n, start, end int) (int, int) {
	start = clamp(start, 0, n)
	end = clamp(end, 0, n)
	if end < start {
		start, end = end, start
	}
	return start, end
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
