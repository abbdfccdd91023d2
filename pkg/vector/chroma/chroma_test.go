package chroma_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/alignlab/simcor/pkg/logger"
	"github.com/alignlab/simcor/pkg/vector"
	"github.com/alignlab/simcor/pkg/vector/chroma"
)

// fakeChroma imitates the Chroma REST endpoints the driver talks to,
// holding added documents in memory so round-trips can be asserted.
type fakeChroma struct {
	collectionID string
	documents    map[string]vector.Document
	order        []string
}

func newFakeChroma() *fakeChroma {
	return &fakeChroma{
		collectionID: "items-collection-id",
		documents:    make(map[string]vector.Document),
	}
}

func (f *fakeChroma) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"id":   f.collectionID,
				"name": "simcor-items",
			})

		case strings.HasSuffix(r.URL.Path, "/add"):
			var req struct {
				IDs        []string         `json:"ids"`
				Embeddings [][]float32      `json:"embeddings"`
				Metadatas  []map[string]any `json:"metadatas"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for i, id := range req.IDs {
				doc := vector.Document{ID: id, Embedding: req.Embeddings[i]}
				if i < len(req.Metadatas) {
					doc.Label, _ = req.Metadatas[i]["label"].(string)
					doc.Study, _ = req.Metadatas[i]["study"].(string)
				}
				if _, ok := f.documents[id]; !ok {
					f.order = append(f.order, id)
				}
				f.documents[id] = doc
			}
			w.WriteHeader(http.StatusCreated)

		case strings.HasSuffix(r.URL.Path, "/query"):
			var req struct {
				NResults int `json:"n_results"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			n := min(req.NResults, len(f.order))
			ids := make([]string, 0, n)
			distances := make([]float32, 0, n)
			metadatas := make([]map[string]any, 0, n)
			embeddings := make([][]float32, 0, n)
			for i, id := range f.order[:n] {
				doc := f.documents[id]
				ids = append(ids, id)
				distances = append(distances, float32(i))
				metadatas = append(metadatas, map[string]any{"label": doc.Label, "study": doc.Study})
				embeddings = append(embeddings, doc.Embedding)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"ids":        [][]string{ids},
				"distances":  [][]float32{distances},
				"metadatas":  [][]map[string]any{metadatas},
				"embeddings": [][][]float32{embeddings},
			})

		case strings.HasSuffix(r.URL.Path, "/get"):
			var req struct {
				IDs []string `json:"ids"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			var ids []string
			var metadatas []map[string]any
			var embeddings [][]float32
			for _, id := range req.IDs {
				doc, ok := f.documents[id]
				if !ok {
					continue
				}
				ids = append(ids, id)
				metadatas = append(metadatas, map[string]any{"label": doc.Label, "study": doc.Study})
				embeddings = append(embeddings, doc.Embedding)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"ids":        ids,
				"metadatas":  metadatas,
				"embeddings": embeddings,
			})

		case strings.HasSuffix(r.URL.Path, "/delete"):
			var req struct {
				IDs []string `json:"ids"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			for _, id := range req.IDs {
				delete(f.documents, id)
				for i, existing := range f.order {
					if existing == id {
						f.order = append(f.order[:i], f.order[i+1:]...)
						break
					}
				}
			}
			w.WriteHeader(http.StatusOK)

		default:
			http.NotFound(w, r)
		}
	})
}

var _ = Describe("Driver", func() {
	var log *zap.Logger

	BeforeEach(func() {
		log = logger.Nop()
	})

	Describe("NewDriver", func() {
		It("should return an error when URL is empty", func() {
			_, err := chroma.NewDriver(chroma.Config{URL: ""}, log)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("chroma URL is required"))
		})

		It("should resolve the collection on connect", func() {
			fake := newFakeChroma()
			server := httptest.NewServer(fake.handler())
			defer server.Close()

			driver, err := chroma.NewDriver(chroma.Config{URL: server.URL}, log)
			Expect(err).NotTo(HaveOccurred())
			Expect(driver).NotTo(BeNil())
		})

		It("should create the collection when it does not exist", func() {
			var created bool
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodGet {
					http.NotFound(w, r)
					return
				}
				created = true
				w.WriteHeader(http.StatusCreated)
				json.NewEncoder(w).Encode(map[string]string{
					"id":   "fresh-collection-id",
					"name": "simcor-items",
				})
			}))
			defer server.Close()

			_, err := chroma.NewDriver(chroma.Config{URL: server.URL}, log)
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
		})
	})

	Describe("round-trips", func() {
		var (
			fake   *fakeChroma
			server *httptest.Server
			driver *chroma.Driver
		)

		BeforeEach(func() {
			fake = newFakeChroma()
			server = httptest.NewServer(fake.handler())

			var err error
			driver, err = chroma.NewDriver(chroma.Config{URL: server.URL}, log)
			Expect(err).NotTo(HaveOccurred())

			err = driver.Add(context.Background(), []vector.Document{
				{ID: "item-1", Label: "patience", Study: "virtues", Embedding: []float32{0.1, 0.2}},
				{ID: "item-2", Label: "kindness", Study: "virtues", Embedding: []float32{0.3, 0.4}},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			Expect(driver.Close()).To(Succeed())
			server.Close()
		})

		It("should add documents with their metadata", func() {
			Expect(fake.documents).To(HaveLen(2))
			Expect(fake.documents["item-1"].Label).To(Equal("patience"))
			Expect(fake.documents["item-1"].Study).To(Equal("virtues"))
		})

		It("should ignore an empty add", func() {
			err := driver.Add(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(fake.documents).To(HaveLen(2))
		})

		It("should map query hits back to documents with scores", func() {
			results, err := driver.Query(context.Background(), []float32{0.1, 0.2}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))

			Expect(results[0].ID).To(Equal("item-1"))
			Expect(results[0].Label).To(Equal("patience"))
			Expect(results[0].Study).To(Equal("virtues"))
			Expect(results[0].Embedding).To(Equal([]float32{0.1, 0.2}))
			Expect(results[0].Score).To(BeNumerically(">", results[1].Score))
		})

		It("should get documents by ID, skipping unknown IDs", func() {
			docs, err := driver.Get(context.Background(), []string{"item-2", "missing"})
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(HaveLen(1))
			Expect(docs[0].ID).To(Equal("item-2"))
			Expect(docs[0].Label).To(Equal("kindness"))
			Expect(docs[0].Embedding).To(Equal([]float32{0.3, 0.4}))
		})

		It("should return nil when getting no IDs", func() {
			docs, err := driver.Get(context.Background(), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(docs).To(BeNil())
		})

		It("should delete documents by ID", func() {
			err := driver.Delete(context.Background(), []string{"item-1"})
			Expect(err).NotTo(HaveOccurred())
			Expect(fake.documents).NotTo(HaveKey("item-1"))
			Expect(fake.documents).To(HaveKey("item-2"))
		})
	})

	Describe("Interface compliance", func() {
		It("should implement vector.Driver interface", func() {
			var _ vector.Driver = (*chroma.Driver)(nil)
		})
	})
})
