// Package ideas turns free-text travel recommendations into structured idea records.
package ideas

// FallbackTitle is used when no numbered idea block can be recovered from the text.
const FallbackTitle = "Travel Recommendations"

// IdeaRecord is a single travel recommendation.
type IdeaRecord struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
	Duration    string   `json:"duration"`
}

// Fallback returns the single-record result used when nothing could be parsed.
func Fallback(text string) []IdeaRecord {
	return []IdeaRecord{newIdea(FallbackTitle, text)}
}

func newIdea(title, description string) IdeaRecord {
	return IdeaRecord{
		Title:       title,
		Description: description,
		Highlights:  []string{},
	}
}
