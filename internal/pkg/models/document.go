package models

// PasteDocument is the JSON view of a paste as served by the paste host
type PasteDocument struct {
	Paste  string `json:"paste"`
	Title  string `json:"title,omitempty"`
	Author string `json:"author,omitempty"`
	Notes  string `json:"notes,omitempty"`
}
