package types

type DataResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type UploadResponse struct {
	OriginalName string `json:"original_name,omitempty"`
	Pages        int    `json:"pages"`
	Chunks       int    `json:"chunks"`
}

// Citation is the provenance of one retrieved chunk, returned alongside the
// answer so callers can display sources.
type Citation struct {
	Page      int    `json:"page"`
	Reference string `json:"reference,omitempty"`
}

type QueryResponse struct {
	Answer    string     `json:"answer"`
	Context   string     `json:"context"`
	Citations []Citation `json:"citations"`
}

type ProcessingDocumentStatus struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	Progress       float64 `json:"progress"`
	TotalPages     int     `json:"total_pages"`
	ProcessedPages int     `json:"processed_pages"`
}

type HealthResponse struct {
	Status          string `json:"status"`
	UploadDirExists bool   `json:"upload_dir_exists"`
	IndexReady      bool   `json:"index_ready"`
}

type StatsResponse struct {
	TotalUploads int64  `json:"total_uploads"`
	TotalQueries int64  `json:"total_queries"`
	StartTime    string `json:"start_time"`
}
