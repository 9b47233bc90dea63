package domain

// Snippet is one reviewable extract anchored to a note in the vault.
type Snippet struct {
	ID        string
	Reference string // vault-relative path of the note it came from
	Content   string
	Due       int64 // unix seconds
	Interval  float64
	Ease      float64
	Dismissed bool
}

// Review is one entry of the review log.
type Review struct {
	ID         string
	SnippetID  string
	ReviewedAt int64
	Rating     int
	Interval   float64
	Ease       float64
}

// Default scheduling values for freshly added snippets.
const (
	DefaultInterval = 1.0
	DefaultEase     = 2.5
)

// SnippetFromRow decodes a formatted result row. The engine surfaces
// integers as int64 and booleans as 0/1, so cells are converted leniently.
func SnippetFromRow(row map[string]any) Snippet {
	return Snippet{
		ID:        asString(row["id"]),
		Reference: asString(row["reference"]),
		Content:   asString(row["content"]),
		Due:       asInt64(row["due"]),
		Interval:  asFloat64(row["interval"]),
		Ease:      asFloat64(row["ease"]),
		Dismissed: asInt64(row["dismissed"]) != 0,
	}
}

func asString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		return int64(x)
	default:
		return 0
	}
}

func asFloat64(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	default:
		return 0
	}
}
