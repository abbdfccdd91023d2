package worker_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	testutils "github.com/alignlab/simcor/pkg/utils/test"
	"github.com/alignlab/simcor/pkg/worker"

	"go.uber.org/zap"
)

var _ = Describe("Pool", func() {
	var (
		embedder *testutils.MockEmbedder
		vdriver  *testutils.MockVectorDriver
	)

	BeforeEach(func() {
		embedder = testutils.NewMockEmbedder()
		vdriver = testutils.NewMockVectorDriver()
	})

	newPool := func() *worker.Pool {
		pool, err := worker.NewPool(&worker.Config{
			Embedder:     embedder,
			VectorDriver: vdriver,
			NumWorkers:   2,
			Logger:       zap.NewNop(),
		})
		Expect(err).NotTo(HaveOccurred())
		return pool
	}

	It("requires an embedder", func() {
		_, err := worker.NewPool(&worker.Config{Logger: zap.NewNop()})
		Expect(err).To(HaveOccurred())
	})

	It("embeds every enqueued item", func() {
		embedder.Embeddings = map[string][]float32{
			"patience": {1, 0, 0},
			"kindness": {0, 1, 0},
		}

		pool := newPool()
		Expect(pool.Enqueue(worker.Job{Label: "patience", Study: "virtues"})).To(BeTrue())
		Expect(pool.Enqueue(worker.Job{Label: "kindness", Study: "virtues"})).To(BeTrue())
		pool.Close()

		vectors, err := pool.Vectors([]string{"patience", "kindness"})
		Expect(err).NotTo(HaveOccurred())
		Expect(vectors).To(HaveLen(2))
		Expect(vectors[0]).To(Equal([]float32{1, 0, 0}))
		Expect(vectors[1]).To(Equal([]float32{0, 1, 0}))
	})

	It("persists embeddings through the vector driver", func() {
		pool := newPool()
		Expect(pool.Enqueue(worker.Job{Label: "patience", Study: "virtues"})).To(BeTrue())
		pool.Close()

		docs := vdriver.Documents()
		Expect(docs).To(HaveLen(1))
		Expect(docs[0].Label).To(Equal("patience"))
		Expect(docs[0].Study).To(Equal("virtues"))
		Expect(docs[0].Embedding).NotTo(BeEmpty())
	})

	It("defaults to a no-op logger", func() {
		pool, err := worker.NewPool(&worker.Config{Embedder: embedder})
		Expect(err).NotTo(HaveOccurred())

		Expect(pool.Enqueue(worker.Job{Label: "patience"})).To(BeTrue())
		pool.Close()

		vectors, err := pool.Vectors([]string{"patience"})
		Expect(err).NotTo(HaveOccurred())
		Expect(vectors).To(HaveLen(1))
	})

	It("works without a vector driver", func() {
		pool, err := worker.NewPool(&worker.Config{
			Embedder: embedder,
			Logger:   zap.NewNop(),
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(pool.Enqueue(worker.Job{Label: "patience"})).To(BeTrue())
		pool.Close()

		vectors, err := pool.Vectors([]string{"patience"})
		Expect(err).NotTo(HaveOccurred())
		Expect(vectors).To(HaveLen(1))
	})

	It("surfaces embedding failures", func() {
		embedder.FailOn = "greed"

		pool := newPool()
		Expect(pool.Enqueue(worker.Job{Label: "patience"})).To(BeTrue())
		Expect(pool.Enqueue(worker.Job{Label: "greed"})).To(BeTrue())
		pool.Close()

		_, err := pool.Vectors([]string{"patience", "greed"})
		Expect(err).To(HaveOccurred())
		Expect(pool.Errs()).To(HaveLen(1))
	})

	It("errors on labels that were never embedded", func() {
		pool := newPool()
		pool.Close()

		_, err := pool.Vectors([]string{"patience"})
		Expect(err).To(MatchError(ContainSubstring("no embedding produced")))
	})
})
