package types

// Corpus names the two reference partitions of the vector index.
const (
	CorpusAllowed    = "allowed"
	CorpusRestricted = "restricted"
)

// Classification is the outcome of matching an uploaded document against
// the reference corpora.
type Classification string

const (
	ClassificationRestricted Classification = Classification(CorpusRestricted)
	ClassificationAllowed    Classification = Classification(CorpusAllowed)
	ClassificationUnrelated  Classification = "unrelated"
)

// Corpus returns the corpus a classified document belongs to, or "" for
// unrelated documents.
func (c Classification) Corpus() string {
	switch c {
	case ClassificationRestricted:
		return CorpusRestricted
	case ClassificationAllowed:
		return CorpusAllowed
	}
	return ""
}

// Document is a stored reference passage in a corpus.
type Document struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	Metadata  Metadata `json:"metadata"`
	CreatedAt int64    `json:"created_at"`
}

// Metadata contains additional document information.
type Metadata struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Chunk  int    `json:"chunk"`
}

// DocumentServiceConfig contains configuration options for text extraction
// and chunking.
type DocumentServiceConfig struct {
	ChunkSize    int // target size for text chunks
	ChunkOverlap int // overlap between neighboring chunks
}
