package ideas

import (
	"strings"
)

var blockMarkers = []string{"1.", "2.", "3.", "4.", "5."}

// Parse converts a generated recommendation list into idea records.
//
// The text is scanned line by line. A line starting with "1." to "5." that
// also contains a colon opens a new idea; labelled lines that follow fill in
// its description, highlights and duration. Parse never returns an empty
// slice: when no idea is found, or scanning fails, the trimmed input comes
// back as a single record titled FallbackTitle.
func Parse(responseText string) (result []IdeaRecord) {
	defer func() {
		if r := recover(); r != nil {
			result = Fallback(strings.TrimSpace(responseText))
		}
	}()

	parsed := scan(responseText)
	if len(parsed) == 0 {
		return Fallback(strings.TrimSpace(responseText))
	}
	return parsed
}

// block is an idea being assembled. Description lines are collected and
// joined once when the block is flushed.
type block struct {
	idea        IdeaRecord
	description []string
}

func (b *block) hasDescription() bool {
	return len(b.description) > 0 && b.description[0] != ""
}

func (b *block) record() IdeaRecord {
	idea := b.idea
	idea.Description = strings.Join(b.description, " ")
	return idea
}

func scan(text string) []IdeaRecord {
	var (
		out     []IdeaRecord
		current *block
	)

	flush := func() {
		if current != nil && current.idea.Title != "" {
			out = append(out, current.record())
		}
	}

	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if opensBlock(line) {
			flush()
			title := afterColon(line)
			if title == "" {
				title = line
			}
			current = &block{idea: newIdea(title, "")}
			continue
		}

		if current == nil {
			continue
		}
		current.apply(line)
	}

	flush()
	return out
}

// apply folds one non-opening line into the block. The order of the checks
// decides which rule wins when several could match.
func (b *block) apply(line string) {
	lower := strings.ToLower(line)

	switch {
	case strings.HasPrefix(lower, "description:"):
		b.description = append(b.description[:0], afterColon(line))
	case strings.HasPrefix(lower, "highlight"):
		highlight := line
		if strings.Contains(line, ":") {
			highlight = afterColon(line)
		}
		b.idea.Highlights = append(b.idea.Highlights, highlight)
	case strings.HasPrefix(lower, "duration:"):
		b.idea.Duration = afterColon(line)
	case b.hasDescription() && !strings.HasPrefix(line, "-"):
		b.description = append(b.description, line)
	case strings.HasPrefix(line, "-"):
		b.idea.Highlights = append(b.idea.Highlights, strings.TrimSpace(line[1:]))
	}
}

func opensBlock(line string) bool {
	if !strings.Contains(line, ":") {
		return false
	}
	for _, marker := range blockMarkers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}

// afterColon returns the trimmed text following the first colon, or "" when
// the line has none.
func afterColon(line string) string {
	_, rest, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(rest)
}
