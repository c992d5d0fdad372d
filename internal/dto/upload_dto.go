package dto

// UploadResponse describes the stored attachment metadata returned to the client.
type UploadResponse struct {
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}
