package logger_test

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alignlab/simcor/pkg/logger"
)

var _ = Describe("NewLoggerWithWriters", func() {
	It("writes info messages", func() {
		var buf bytes.Buffer
		l := logger.NewLoggerWithWriters(false, &buf)
		l.Info("hello")
		_ = l.Sync()

		Expect(buf.String()).To(ContainSubstring("hello"))
	})

	It("filters debug messages when debug is off", func() {
		var buf bytes.Buffer
		l := logger.NewLoggerWithWriters(false, &buf)
		l.Debug("hidden")
		_ = l.Sync()

		Expect(buf.String()).NotTo(ContainSubstring("hidden"))
	})

	It("passes debug messages when debug is on", func() {
		var buf bytes.Buffer
		l := logger.NewLoggerWithWriters(true, &buf)
		l.Debug("visible")
		_ = l.Sync()

		Expect(buf.String()).To(ContainSubstring("visible"))
	})

	It("fans out to multiple writers", func() {
		var buf1, buf2 bytes.Buffer
		l := logger.NewLoggerWithWriters(false, &buf1, &buf2)
		l.Info("multi")
		_ = l.Sync()

		Expect(buf1.String()).To(ContainSubstring("multi"))
		Expect(buf2.String()).To(ContainSubstring("multi"))
	})
})
