package model

// PlaceholderImage is used when a game page carries no cover art.
const PlaceholderImage = "https://howlongtobeat.com/img/hltb_brand.png"

// Candidate is a scraped entry that has not yet passed hour extraction.
// Hours stays zero until the extractor finds a figure.
type Candidate struct {
	Title     string  `json:"title"`
	Hours     float64 `json:"hours,omitempty"`
	ImageURL  string  `json:"image_url,omitempty"`
	SourceURL string  `json:"source_url"`
	Text      string  `json:"-"` // raw item text fed to the extractor
}

// ResolvedGame is a candidate with a positive completion time.
type ResolvedGame struct {
	GameName string  `json:"gameName"`
	Hours    float64 `json:"hours"`
	ImageURL string  `json:"imageUrl"`
	URL      string  `json:"url"`
}
