package model

import "time"

// DefaultHLTBLink is stored when a record is added without a source link.
const DefaultHLTBLink = "https://howlongtobeat.com"

// Player is a league participant.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// GameRecord is a completed game credited to a player.
type GameRecord struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"player_id"`
	GameName  string    `json:"game_name"`
	HLTBLink  string    `json:"hltb_link"`
	ImageURL  string    `json:"image_url"`
	Hours     float64   `json:"hours"`
	Points    int       `json:"points"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// LeaderboardEntry aggregates a player's credited games.
type LeaderboardEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TotalPoints int    `json:"totalPoints"`
	Games       int    `json:"games"`
}
