package model

type WarningJSON struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

type ScoreCreatedResponse struct {
	Id       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Warnings []WarningJSON `json:"warnings"`
}

type ScoreSummary struct {
	Id       string        `json:"id"`
	Title    string        `json:"title"`
	Artist   string        `json:"artist"`
	Capo     *int          `json:"capo,omitempty"`
	Sections int           `json:"sections"`
	Systems  int           `json:"systems"`
	Measures int           `json:"measures"`
	Warnings []WarningJSON `json:"warnings"`
	Metadata *SongMetadata `json:"metadata,omitempty"`
}

type SongMetadata struct {
	Artist  string `json:"artist"`
	Title   string `json:"title"`
	Release string `json:"release"`
	Year    uint   `json:"year"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
