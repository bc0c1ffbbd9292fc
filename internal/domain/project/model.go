package project

import "time"

// Project is a job site identified by its street address.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Client    string    `json:"client"`
	CreatedAt time.Time `json:"created_at"`
}
