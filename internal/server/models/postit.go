package models

// Postit is a draggable note pinned to a folder board. X/Y are canvas
// coordinates; position updates are last-write-wins.
type Postit struct {
	ID       int64   `json:"id"`
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	FolderID int64   `json:"folderId"`
	UserID   int64   `json:"-"`
}
