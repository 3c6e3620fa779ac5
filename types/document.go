package types

// UnitKind identifies which extraction source produced a content unit.
type UnitKind string

const (
	UnitKindText  UnitKind = "text"
	UnitKindTable UnitKind = "table"
	UnitKindImage UnitKind = "image"
)

// ContentUnit is one extracted artifact from a PDF page: a page's text layer,
// one detected table, or the OCR text of one embedded image. Units are
// immutable once built; the chunker consumes them in extraction order.
type ContentUnit struct {
	Content string   `json:"content"`
	Page    int      `json:"page"` // 1-based page number
	Kind    UnitKind `json:"kind"`
	// Reference is set only for table/image units ("Table 2", "Image 1"),
	// numbered per page and per kind.
	Reference string `json:"reference,omitempty"`
}

// Chunk is a retrieval-indexable piece of content derived from one or more
// content units of the same page. Table and image units map to exactly one
// chunk each; text units are packed by the chunker.
type Chunk struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Metadata  ChunkMetadata `json:"metadata"`
	CreatedAt int64         `json:"created_at"`
}

// ChunkMetadata carries the provenance of a chunk's source unit. When several
// paragraphs are merged into one chunk the metadata is the first contributing
// unit's, not a union.
type ChunkMetadata struct {
	Title     string   `json:"title"`
	Source    string   `json:"source"`
	Page      int      `json:"page"`
	Kind      UnitKind `json:"kind"`
	Reference string   `json:"reference,omitempty"`
}

// DocumentRecord is the registry entry for one ingested document.
type DocumentRecord struct {
	ID         string `bson:"_id" json:"id"`
	Title      string `bson:"title" json:"title"`
	Source     string `bson:"source" json:"source"`
	Pages      int    `bson:"pages" json:"pages"`
	UnitCount  int    `bson:"unit_count" json:"unit_count"`
	ChunkCount int    `bson:"chunk_count" json:"chunk_count"`
	Status     string `bson:"status" json:"status"` // "ingesting" or "ready"
	CreatedAt  int64  `bson:"created_at" json:"created_at"`
	UpdatedAt  int64  `bson:"updated_at" json:"updated_at"`
}

const (
	DocumentStatusIngesting = "ingesting"
	DocumentStatusReady     = "ready"
)

// ChunkerConfig contains configuration options for text chunking.
type ChunkerConfig struct {
	MaxChars int // Soft upper bound on a text chunk's length in characters
}

// RetrievalConfig controls query-time similarity search.
type RetrievalConfig struct {
	TopK   int // Number of chunks handed to the model
	FetchK int // Number of candidates fetched before diversity re-ranking
}
