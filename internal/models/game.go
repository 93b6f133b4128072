package models

import "time"

// Game represents an entry in the global game catalog.
type Game struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserGame links a user to a game they added to their library.
type UserGame struct {
	UserID  string    `json:"userId"`
	GameID  string    `json:"gameId"`
	AddedAt time.Time `json:"addedAt"`
}
