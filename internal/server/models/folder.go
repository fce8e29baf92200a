package models

// Folder groups todos and post-its. Visible and mutable only by its owner;
// deleting a folder removes its children in the same transaction.
type Folder struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	UserID int64  `json:"-"`
}
