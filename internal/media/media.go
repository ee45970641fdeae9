package media

import "math"

// Metadata captures the descriptive fields extracted for one video. Counter
// fields are pointers because the upstream platform omits them for some
// videos; nil serializes as JSON null.
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Author      string   `json:"author"`
	AuthorID    string   `json:"author_id"`
	Likes       *int64   `json:"likes"`
	Views       *int64   `json:"views"`
	Comments    *int64   `json:"comments"`
	Duration    *float64 `json:"duration"`
	UploadDate  string   `json:"upload_date"`
	Thumbnail   string   `json:"thumbnail"`
}

// Segment is one timestamped span of a transcript. Times are seconds from
// the start of the media, rounded to two decimal places.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Transcript is the full transcription result for one video.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// RoundSeconds rounds a timestamp to the two-decimal precision used in
// transcript segments.
func RoundSeconds(v float64) float64 {
	return math.Round(v*100) / 100
}
