package domain

// StoredFile describes bytes the upload repository has written to disk.
type StoredFile struct {
	Name      string `json:"filename"`
	SizeBytes int64  `json:"size_bytes"`
	MimeType  string `json:"mime_type"`
}
