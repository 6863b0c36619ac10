package models

// Segment is one caption cue. Start and Duration are seconds.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Transcript is the caption track of one video.
type Transcript struct {
	VideoID  string    `json:"videoId"`
	Language string    `json:"language"`
	Kind     string    `json:"kind,omitempty"` // "asr" for auto-generated tracks
	Source   string    `json:"source"`         // strategy that produced it
	Segments []Segment `json:"segments"`
	Text     string    `json:"text"`
}
