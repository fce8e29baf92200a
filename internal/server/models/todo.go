package models

import "time"

// Todo is a task inside a folder. Deadline and Link are optional. An
// attachment is stored either inline (FileData) or in object storage
// (FileKey), depending on deployment config; FileName is set in both cases.
type Todo struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Link        string     `json:"link,omitempty"`
	Done        bool       `json:"done"`
	UserID      int64      `json:"-"`
	FolderID    int64      `json:"folderId"`
	FileName    string     `json:"fileName,omitempty"`
	FileData    []byte     `json:"-"`
	FileKey     string     `json:"-"`
}

// Attachment is a todo's file as returned to the client.
type Attachment struct {
	Name string
	Data []byte
}
