package chroma

// Wire types for the slice of Chroma's v2 REST API the driver uses.
// Query and get responses carry parallel arrays; the driver re-zips them
// into vector.Document values.

type chromaCollection struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type chromaAddRequest struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Metadatas  []map[string]any `json:"metadatas,omitempty"`
	Documents  []string         `json:"documents,omitempty"`
}

type chromaQueryRequest struct {
	QueryEmbeddings [][]float32 `json:"query_embeddings"`
	NResults        int         `json:"n_results"`
	Include         []string    `json:"include"`
}

// Query responses nest one group per query embedding; the driver only
// ever sends one.
type chromaQueryResponse struct {
	IDs        [][]string         `json:"ids"`
	Distances  [][]float32        `json:"distances"`
	Metadatas  [][]map[string]any `json:"metadatas"`
	Embeddings [][][]float32      `json:"embeddings"`
}

type chromaGetRequest struct {
	IDs     []string `json:"ids"`
	Include []string `json:"include"`
}

type chromaGetResponse struct {
	IDs        []string         `json:"ids"`
	Metadatas  []map[string]any `json:"metadatas"`
	Embeddings [][]float32      `json:"embeddings"`
}

type chromaDeleteRequest struct {
	IDs []string `json:"ids"`
}
