package domain

// FootageClip is a single search hit in the dailies catalogue.
type FootageClip struct {
	Timestamp   string `json:"timestamp"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
}
