package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alignlab/simcor/pkg/report"
	"github.com/alignlab/simcor/pkg/storage"
	"github.com/alignlab/simcor/pkg/storage/sqlite"
)

func sqliteTestReport(id string) *report.Report {
	return &report.Report{
		ID:        id,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
		NameA:     "human.csv",
		NameB:     "model.csv",
		Labels:    []string{"warm", "fair", "kind"},
		PairCount: 3,
		Absolute:  true,
		Pearson:   -0.41,
	}
}

var _ = Describe("Driver", func() {
	var (
		driver *sqlite.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		driver, err = sqlite.NewDriver(":memory:")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	Describe("NewDriver", func() {
		It("creates a driver with a file database", func() {
			tmpDir := GinkgoT().TempDir()
			dbPath := filepath.Join(tmpDir, "test.db")

			s, err := sqlite.NewDriver(dbPath)
			Expect(err).NotTo(HaveOccurred())
			defer s.Close()

			_, err = os.Stat(dbPath)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("Put and Get", func() {
		It("round-trips a report including labels and flags", func() {
			r := sqliteTestReport("r1")
			Expect(driver.Put(ctx, r)).To(Succeed())

			got, err := driver.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.NameA).To(Equal(r.NameA))
			Expect(got.NameB).To(Equal(r.NameB))
			Expect(got.Labels).To(Equal(r.Labels))
			Expect(got.PairCount).To(Equal(r.PairCount))
			Expect(got.Absolute).To(BeTrue())
			Expect(got.Pearson).To(Equal(r.Pearson))
			Expect(got.CreatedAt.Equal(r.CreatedAt)).To(BeTrue())
		})

		It("overwrites on duplicate ID", func() {
			r := sqliteTestReport("r1")
			Expect(driver.Put(ctx, r)).To(Succeed())

			r.Pearson = 0.99
			Expect(driver.Put(ctx, r)).To(Succeed())

			got, err := driver.Get(ctx, "r1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Pearson).To(Equal(0.99))
		})

		It("returns NotFoundError for a missing ID", func() {
			_, err := driver.Get(ctx, "missing")
			Expect(err).To(BeAssignableToTypeOf(storage.NotFoundError{}))
		})
	})

	Describe("List and Delete", func() {
		It("lists newest first and deletes by ID", func() {
			older := sqliteTestReport("old")
			older.CreatedAt = older.CreatedAt.Add(-time.Hour)
			newer := sqliteTestReport("new")
			Expect(driver.Put(ctx, older)).To(Succeed())
			Expect(driver.Put(ctx, newer)).To(Succeed())

			reports, err := driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(2))
			Expect(reports[0].ID).To(Equal("new"))

			Expect(driver.Delete(ctx, "old")).To(Succeed())
			reports, err = driver.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(reports).To(HaveLen(1))
		})
	})
})
