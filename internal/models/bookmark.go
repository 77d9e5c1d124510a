package models

import "time"

type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
}
