package fs

import "time"

// Entry is a snapshot of one directory member at listing time. It has
// no identity beyond its path and is never persisted.
type Entry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	IsDir    bool      `json:"is_dir"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Created  time.Time `json:"created"`
}

// Query describes one recursive filename search. Empty filters match
// everything.
type Query struct {
	Root         string `json:"root"`
	NameContains string `json:"name_contains,omitempty"`
	Extension    string `json:"extension,omitempty"`
}

// Info is detailed metadata for a single path.
type Info struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	SizeHuman string    `json:"size_human"`
	IsDir     bool      `json:"is_dir"`
	Mode      string    `json:"mode"`
	Modified  time.Time `json:"modified"`
	Created   time.Time `json:"created"`
	Accessed  time.Time `json:"accessed"`
}

// Preview is the displayable form of a file's content. Binary files
// carry only the MIME type so the UI can refuse to render them.
type Preview struct {
	Path    string `json:"path"`
	MIME    string `json:"mime"`
	Text    bool   `json:"text"`
	Content string `json:"content,omitempty"`
	Size    int    `json:"size"`
}
