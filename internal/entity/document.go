package entity

import "path/filepath"

// Document is one plan PDF found while enumerating a batch directory.
type Document struct {
	Path     string `json:"path"`
	FileName string `json:"file_name"`
}

func NewDocument(path string) Document {
	return Document{Path: path, FileName: filepath.Base(path)}
}
