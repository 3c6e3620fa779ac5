package types

type UploadRequest struct {
	Title  string `json:"title"`
	Source string `json:"source"`
}

type QueryRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"top_k,omitempty"`
}
