// Package chroma provides a Chroma vector database driver implementation.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/vector"
)

// DefaultCollectionName is the default collection for item embeddings.
const DefaultCollectionName = "simcor-items"

const collectionsBase = "%s/api/v2/tenants/default_tenant/databases/default_database/collections"

// Driver implements vector.Driver using Chroma's REST API.
type Driver struct {
	baseURL        string
	collectionName string
	collectionID   string
	httpClient     *http.Client
	logger         *zap.Logger
}

// Config holds configuration for the Chroma driver.
type Config struct {
	// URL is the Chroma server URL (e.g., "http://localhost:8000").
	URL string

	// CollectionName is the collection to use. Defaults to
	// DefaultCollectionName if empty.
	CollectionName string
}

// NewDriver creates a new Chroma vector driver and resolves (or creates)
// its collection.
func NewDriver(c Config, logger *zap.Logger) (*Driver, error) {
	if c.URL == "" {
		return nil, fmt.Errorf("%w: chroma URL is required", vector.ErrConnection)
	}

	collectionName := c.CollectionName
	if collectionName == "" {
		collectionName = DefaultCollectionName
	}

	d := &Driver{
		baseURL:        c.URL,
		collectionName: collectionName,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}

	collectionID, err := d.getOrCreateCollection(context.Background())
	if err != nil {
		return nil, fmt.Errorf("getting or creating collection %q: %w", collectionName, err)
	}
	d.collectionID = collectionID

	logger.Info("connected to Chroma",
		zap.String("url", c.URL),
		zap.String("collection", collectionName),
		zap.String("collection_id", collectionID),
	)

	return d, nil
}

func (d *Driver) getOrCreateCollection(ctx context.Context) (string, error) {
	url := fmt.Sprintf(collectionsBase+"/%s", d.baseURL, d.collectionName)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating get request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", vector.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		var collection chromaCollection
		if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
			return "", fmt.Errorf("decoding collection response: %w", err)
		}
		return collection.ID, nil
	}

	// Collection doesn't exist, create it.
	createURL := fmt.Sprintf(collectionsBase, d.baseURL)
	jsonBody, err := json.Marshal(map[string]string{"name": d.collectionName})
	if err != nil {
		return "", fmt.Errorf("marshaling create request: %w", err)
	}

	req, err = http.NewRequestWithContext(ctx, "POST", createURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("creating create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err = d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", vector.ErrConnection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("failed to create collection: status %d: %s", resp.StatusCode, string(body))
	}

	var collection chromaCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}

	return collection.ID, nil
}

// Add stores documents with their embeddings.
func (d *Driver) Add(ctx context.Context, docs []vector.Document) error {
	if len(docs) == 0 {
		return nil
	}

	ids := make([]string, len(docs))
	embeddings := make([][]float32, len(docs))
	metadatas := make([]map[string]any, len(docs))
	documents := make([]string, len(docs))

	for i, doc := range docs {
		ids[i] = doc.ID
		embeddings[i] = doc.Embedding
		metadatas[i] = map[string]any{"label": doc.Label, "study": doc.Study}
		documents[i] = doc.Label
	}

	jsonBody, err := json.Marshal(chromaAddRequest{
		IDs:        ids,
		Embeddings: embeddings,
		Metadatas:  metadatas,
		Documents:  documents,
	})
	if err != nil {
		return fmt.Errorf("marshaling add request: %w", err)
	}

	url := fmt.Sprintf(collectionsBase+"/%s/add", d.baseURL, d.collectionID)
	resp, err := d.post(ctx, url, jsonBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to add documents: status %d: %s", resp.StatusCode, string(body))
	}

	d.logger.Debug("added documents to chroma",
		zap.Int("count", len(docs)),
	)

	return nil
}

// Query finds the topK documents most similar to the given embedding.
func (d *Driver) Query(ctx context.Context, embedding []float32, topK int) ([]vector.QueryResult, error) {
	if topK <= 0 {
		topK = 10
	}

	jsonBody, err := json.Marshal(chromaQueryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        topK,
		Include:         []string{"metadatas", "distances", "embeddings"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling query request: %w", err)
	}

	url := fmt.Sprintf(collectionsBase+"/%s/query", d.baseURL, d.collectionID)
	resp, err := d.post(ctx, url, jsonBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to query: status %d: %s", resp.StatusCode, string(body))
	}

	var queryResp chromaQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return nil, fmt.Errorf("decoding query response: %w", err)
	}

	var results []vector.QueryResult

	// Only one query embedding is sent, so only the first group matters.
	if len(queryResp.IDs) == 0 || len(queryResp.IDs[0]) == 0 {
		return results, nil
	}

	ids := queryResp.IDs[0]
	distances := queryResp.Distances[0]

	var metadatas []map[string]any
	if len(queryResp.Metadatas) > 0 {
		metadatas = queryResp.Metadatas[0]
	}

	var embeddings [][]float32
	if len(queryResp.Embeddings) > 0 {
		embeddings = queryResp.Embeddings[0]
	}

	for i, id := range ids {
		result := vector.QueryResult{
			Document: vector.Document{ID: id},
		}

		if i < len(metadatas) && metadatas[i] != nil {
			if label, ok := metadatas[i]["label"].(string); ok {
				result.Label = label
			}
			if study, ok := metadatas[i]["study"].(string); ok {
				result.Study = study
			}
		}

		if i < len(embeddings) {
			result.Embedding = embeddings[i]
		}

		// Lower distance = higher similarity.
		if i < len(distances) {
			result.Score = 1.0 / (1.0 + distances[i])
		}

		results = append(results, result)
	}

	d.logger.Debug("queried chroma",
		zap.Int("results", len(results)),
	)

	return results, nil
}

// Get retrieves documents by their IDs.
func (d *Driver) Get(ctx context.Context, ids []string) ([]vector.Document, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	jsonBody, err := json.Marshal(chromaGetRequest{
		IDs:     ids,
		Include: []string{"metadatas", "embeddings"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling get request: %w", err)
	}

	url := fmt.Sprintf(collectionsBase+"/%s/get", d.baseURL, d.collectionID)
	resp, err := d.post(ctx, url, jsonBody)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get documents: status %d: %s", resp.StatusCode, string(body))
	}

	var getResp chromaGetResponse
	if err := json.NewDecoder(resp.Body).Decode(&getResp); err != nil {
		return nil, fmt.Errorf("decoding get response: %w", err)
	}

	docs := make([]vector.Document, len(getResp.IDs))
	for i, id := range getResp.IDs {
		docs[i] = vector.Document{ID: id}

		if i < len(getResp.Metadatas) && getResp.Metadatas[i] != nil {
			if label, ok := getResp.Metadatas[i]["label"].(string); ok {
				docs[i].Label = label
			}
			if study, ok := getResp.Metadatas[i]["study"].(string); ok {
				docs[i].Study = study
			}
		}

		if i < len(getResp.Embeddings) {
			docs[i].Embedding = getResp.Embeddings[i]
		}
	}

	return docs, nil
}

// Delete removes documents by their IDs.
func (d *Driver) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	jsonBody, err := json.Marshal(chromaDeleteRequest{IDs: ids})
	if err != nil {
		return fmt.Errorf("marshaling delete request: %w", err)
	}

	url := fmt.Sprintf(collectionsBase+"/%s/delete", d.baseURL, d.collectionID)
	resp, err := d.post(ctx, url, jsonBody)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("failed to delete documents: status %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Close releases resources held by the driver.
func (d *Driver) Close() error {
	// HTTP client doesn't require explicit cleanup
	return nil
}

func (d *Driver) post(ctx context.Context, url string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", vector.ErrConnection, err)
	}
	return resp, nil
}

var _ vector.Driver = (*Driver)(nil)
