package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Watch", func() {
	var (
		path    string
		ctx     context.Context
		cancel  context.CancelFunc
		updates chan *Config
		errs    chan error
		done    chan error
	)

	BeforeEach(func() {
		path = filepath.Join(GinkgoT().TempDir(), "sortviz.yaml")
		Expect(Save(path, DefaultConfig())).To(Succeed())

		ctx, cancel = context.WithCancel(context.Background())
		updates = make(chan *Config, 16)
		errs = make(chan error, 16)
		done = make(chan error, 1)

		go func() {
			done <- Watch(ctx, path, func(cfg *Config, err error) {
				if err != nil {
					errs <- err
					return
				}
				updates <- cfg
			})
		}()
		// Give the watcher time to register the directory.
		time.Sleep(100 * time.Millisecond)
	})

	AfterEach(func() {
		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("delivers the reloaded config after a write", func() {
		cfg := DefaultConfig()
		cfg.DelayMs = 120
		cfg.Theme = "abyss"
		Expect(Save(path, cfg)).To(Succeed())

		Eventually(updates, 2*time.Second).Should(Receive(And(
			HaveField("DelayMs", 120),
			HaveField("Theme", "abyss"),
		)))
	})

	It("reports an invalid file as an error", func() {
		Expect(os.WriteFile(path, []byte("algorithm: bogo\n"), 0644)).To(Succeed())
		Eventually(errs, 2*time.Second).Should(Receive(HaveOccurred()))
	})

	It("ignores other files in the directory", func() {
		other := filepath.Join(filepath.Dir(path), "other.yaml")
		Expect(os.WriteFile(other, []byte("x: 1\n"), 0644)).To(Succeed())
		Consistently(updates, 300*time.Millisecond).ShouldNot(Receive())
	})
})
