package session_test

import (
	"context"
	"slices"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/metrics"
	"github.com/san-kum/sortviz/internal/session"
	"github.com/san-kum/sortviz/internal/trace"
)

type recorder struct {
	mu     sync.Mutex
	events []trace.Event
}

func (r *recorder) OnStep(ev trace.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) Events() []trace.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]trace.Event(nil), r.events...)
}

func (r *recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type outcome struct {
	result *session.Result
	err    error
}

func runAsync(ctx context.Context, c *session.Controller, alg string) <-chan outcome {
	done := make(chan outcome, 1)
	go func() {
		res, err := c.RequestSort(ctx, alg)
		done <- outcome{res, err}
	}()
	return done
}

var _ = Describe("Controller", func() {
	var (
		rec *recorder
		cfg session.Config
		reg *algorithms.Registry
	)

	BeforeEach(func() {
		rec = &recorder{}
		reg = algorithms.NewRegistry()
		cfg = session.DefaultConfig()
		cfg.Delay = 0
		cfg.Seed = 3
	})

	newController := func(initial trace.Sequence) *session.Controller {
		c := session.New(initial, reg, cfg)
		c.AddObserver(rec)
		return c
	}

	Describe("a completed run", func() {
		It("publishes every step in order and ends sorted with no highlights", func() {
			c := newController(trace.Sequence{2, 1, 3})
			c.AddMetric(metrics.NewStepCount())

			res, err := c.RequestSort(context.Background(), "bubble")
			Expect(err).NotTo(HaveOccurred())

			events := rec.Events()
			Expect(events).To(HaveLen(4))
			Expect(events[0].Step.Values()).To(Equal(trace.Sequence{2, 1, 3}))
			Expect(events[0].Step.Highlights()).To(Equal([]int{0, 1}))
			Expect(events[1].Step.Values()).To(Equal(trace.Sequence{1, 2, 3}))
			Expect(events[2].Step.Highlights()).To(BeEmpty())

			last := events[len(events)-1]
			Expect(last.Final).To(BeTrue())
			Expect(last.Step.Values()).To(Equal(trace.Sequence{1, 2, 3}))
			Expect(last.Step.Highlights()).To(BeEmpty())

			for i, ev := range events {
				Expect(ev.Index).To(Equal(i))
				Expect(ev.Session).To(Equal(res.ID))
				Expect(ev.Algorithm).To(Equal("bubble"))
			}

			current, highlights := c.Current()
			Expect(current).To(Equal(trace.Sequence{1, 2, 3}))
			Expect(highlights).To(BeEmpty())
			Expect(c.Active()).To(BeFalse())
			Expect(res.StepCount).To(Equal(3))
			Expect(res.Final).To(Equal(trace.Sequence{1, 2, 3}))
			Expect(res.Metrics).To(HaveKeyWithValue("steps", 3.0))
		})

		It("sorts every registered algorithm to the same final sequence", func() {
			for _, name := range algorithms.Names {
				c := newController(trace.Sequence{5, 3, 9, 1, 3, 7})
				res, err := c.RequestSort(context.Background(), name)
				Expect(err).NotTo(HaveOccurred(), name)
				Expect(res.Final).To(Equal(trace.Sequence{1, 3, 3, 5, 7, 9}), name)
			}
		})

		It("completes an already-sorted single element without steps", func() {
			c := newController(trace.Sequence{4})
			res, err := c.RequestSort(context.Background(), "quick")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepCount).To(BeZero())
			Expect(rec.Events()).To(HaveLen(1))
			Expect(rec.Events()[0].Final).To(BeTrue())
		})

		It("keeps the steps when recording", func() {
			cfg.Record = true
			c := newController(trace.Sequence{3, 2, 1})
			res, err := c.Run(context.Background(), trace.Sequence{3, 2, 1}, "selection")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps).To(HaveLen(res.StepCount))
			Expect(res.Initial).To(Equal(trace.Sequence{3, 2, 1}))
		})

		It("does not mutate the caller's input", func() {
			input := trace.Sequence{3, 1, 2}
			c := newController(nil)
			_, err := c.Run(context.Background(), input, "heap")
			Expect(err).NotTo(HaveOccurred())
			Expect(input).To(Equal(trace.Sequence{3, 1, 2}))
		})
	})

	Describe("an unknown algorithm", func() {
		It("fails without touching state", func() {
			c := newController(trace.Sequence{3, 1, 2})
			_, err := c.RequestSort(context.Background(), "bogo")
			Expect(err).To(MatchError(trace.ErrInvalidAlgorithm))

			current, _ := c.Current()
			Expect(current).To(Equal(trace.Sequence{3, 1, 2}))
			Expect(c.Active()).To(BeFalse())
			Expect(rec.Events()).To(BeEmpty())
		})
	})

	Describe("overlapping requests", func() {
		BeforeEach(func() {
			cfg.Delay = 5 * time.Millisecond
		})

		It("rejects a second run and leaves the first untouched", func() {
			c := newController(trace.Sequence{6, 5, 4, 3, 2, 1})
			first := runAsync(context.Background(), c, "bubble")
			Eventually(c.Active).Should(BeTrue())
			id := c.Session()

			_, err := c.RequestSort(context.Background(), "merge")
			Expect(err).To(MatchError(trace.ErrSessionActive))

			var out outcome
			Eventually(first, 5*time.Second).Should(Receive(&out))
			Expect(out.err).NotTo(HaveOccurred())
			Expect(out.result.Final).To(Equal(trace.Sequence{1, 2, 3, 4, 5, 6}))

			for i, ev := range rec.Events() {
				Expect(ev.Session).To(Equal(id))
				Expect(ev.Index).To(Equal(i))
			}
		})

		It("rejects randomize while a session runs", func() {
			cfg.Delay = 20 * time.Millisecond
			c := newController(trace.Sequence{4, 3, 2, 1})
			first := runAsync(context.Background(), c, "selection")
			Eventually(c.Active).Should(BeTrue())

			_, err := c.Randomize()
			Expect(err).To(MatchError(trace.ErrSessionActive))
			Expect(c.SetSequence(trace.Sequence{1})).To(MatchError(trace.ErrSessionActive))

			Eventually(first, 5*time.Second).Should(Receive())
		})

		It("lets a newer run supersede the active one", func() {
			cfg.Policy = session.PolicySupersede
			c := newController(trace.Sequence{8, 7, 6, 5, 4, 3, 2, 1})
			first := runAsync(context.Background(), c, "bubble")
			Eventually(rec.Count).Should(BeNumerically(">=", 2))
			oldID := c.Session()

			res, err := c.Run(context.Background(), trace.Sequence{3, 1, 2}, "insertion")
			Expect(err).NotTo(HaveOccurred())

			var out outcome
			Eventually(first, 5*time.Second).Should(Receive(&out))
			Expect(out.err).To(MatchError(trace.ErrSuperseded))

			events := rec.Events()
			seenNew := false
			for _, ev := range events {
				if ev.Session == res.ID {
					seenNew = true
					continue
				}
				Expect(seenNew).To(BeFalse(), "old session published after the new one started")
				Expect(ev.Session).To(Equal(oldID))
			}
			Expect(events[len(events)-1].Final).To(BeTrue())
			Expect(events[len(events)-1].Session).To(Equal(res.ID))

			current, _ := c.Current()
			Expect(current).To(Equal(trace.Sequence{1, 2, 3}))
		})
	})

	Describe("cancellation", func() {
		It("returns the context error and clears highlights", func() {
			cfg.Delay = 20 * time.Millisecond
			c := newController(trace.Sequence{5, 4, 3, 2, 1})
			ctx, cancel := context.WithCancel(context.Background())
			done := runAsync(ctx, c, "bubble")
			Eventually(rec.Count).Should(BeNumerically(">=", 1))
			cancel()

			var out outcome
			Eventually(done, 5*time.Second).Should(Receive(&out))
			Expect(out.err).To(MatchError(context.Canceled))
			Expect(c.Active()).To(BeFalse())

			current, highlights := c.Current()
			Expect(highlights).To(BeEmpty())
			Expect(current.IsPermutationOf(trace.Sequence{1, 2, 3, 4, 5})).To(BeTrue())
			for _, ev := range rec.Events() {
				Expect(ev.Final).To(BeFalse())
			}
		})

		It("stops the active session on Stop", func() {
			cfg.Delay = 20 * time.Millisecond
			c := newController(trace.Sequence{5, 4, 3, 2, 1})
			done := runAsync(context.Background(), c, "selection")
			Eventually(c.Active).Should(BeTrue())
			c.Stop()
			var out outcome
			Eventually(done, 5*time.Second).Should(Receive(&out))
			Expect(out.err).To(HaveOccurred())
		})
	})

	Describe("Randomize", func() {
		It("publishes a permutation of the current sequence", func() {
			c := newController(trace.Ascending(10))
			seq, err := c.Randomize()
			Expect(err).NotTo(HaveOccurred())
			Expect(seq.IsPermutationOf(trace.Ascending(10))).To(BeTrue())

			events := rec.Events()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Session).To(BeEmpty())
			Expect(events[0].Step.Values()).To(Equal(seq))

			current, _ := c.Current()
			Expect(current).To(Equal(seq))
		})

		It("restarts from a new seed set through SetConfig", func() {
			c := newController(trace.Ascending(12))
			next := cfg
			next.Seed = 11
			c.SetConfig(next)
			got, err := c.Randomize()
			Expect(err).NotTo(HaveOccurred())

			fresh := session.New(trace.Ascending(12), reg, next)
			want, err := fresh.Randomize()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		})

		It("keeps its stream when the seed is unchanged", func() {
			c := newController(trace.Ascending(12))
			_, err := c.Randomize()
			Expect(err).NotTo(HaveOccurred())
			c.SetConfig(cfg)
			got, err := c.Randomize()
			Expect(err).NotTo(HaveOccurred())

			ref := session.New(trace.Ascending(12), reg, cfg)
			_, err = ref.Randomize()
			Expect(err).NotTo(HaveOccurred())
			want, err := ref.Randomize()
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		})
	})

	Describe("pacing", func() {
		type stamped struct {
			at    time.Time
			final bool
		}

		var (
			mu     sync.Mutex
			stamps []stamped
		)

		BeforeEach(func() {
			stamps = nil
		})

		paced := func(delay time.Duration, initial trace.Sequence) *session.Controller {
			cfg.Delay = delay
			c := session.New(initial, reg, cfg)
			c.AddObserver(trace.ObserverFunc(func(ev trace.Event) {
				mu.Lock()
				defer mu.Unlock()
				stamps = append(stamps, stamped{at: time.Now(), final: ev.Final})
			}))
			return c
		}

		It("waits the configured delay after every published step", func() {
			const delay = 20 * time.Millisecond
			c := paced(delay, trace.Sequence{3, 2, 1})

			res, err := c.RequestSort(context.Background(), "bubble")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepCount).To(Equal(9))
			Expect(res.Delay).To(Equal(delay))
			Expect(res.Elapsed).To(BeNumerically(">=", time.Duration(res.StepCount)*delay))

			mu.Lock()
			defer mu.Unlock()
			Expect(stamps).To(HaveLen(res.StepCount + 1))
			Expect(stamps[len(stamps)-1].final).To(BeTrue())
			for i := 1; i < len(stamps); i++ {
				Expect(stamps[i].at.Sub(stamps[i-1].at)).To(BeNumerically(">=", delay), "gap before event %d", i)
			}
		})

		It("uses the per-algorithm delay", func() {
			cfg.Delays = map[string]time.Duration{"bubble": 15 * time.Millisecond}
			c := paced(time.Hour, trace.Sequence{2, 1})

			res, err := c.RequestSort(context.Background(), "bubble")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Delay).To(Equal(15 * time.Millisecond))
			Expect(res.Elapsed).To(BeNumerically(">=", 3*15*time.Millisecond))
		})

		It("publishes without suspending at delay 0", func() {
			reversed := trace.Ascending(20)
			slices.Reverse(reversed)
			c := paced(0, reversed)

			res, err := c.RequestSort(context.Background(), "bubble")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.StepCount).To(Equal(3 * 190))
			Expect(res.Elapsed).To(BeNumerically("<", time.Second))
		})
	})
})

var _ = Describe("Config", func() {
	It("uses per-algorithm overrides", func() {
		cfg := session.DefaultConfig()
		cfg.Delays = map[string]time.Duration{"quick": 0}
		Expect(cfg.StepDelay("quick")).To(BeZero())
		Expect(cfg.StepDelay("merge")).To(Equal(500 * time.Millisecond))
	})

	DescribeTable("ParsePolicy",
		func(in string, want session.Policy, ok bool) {
			p, err := session.ParsePolicy(in)
			if !ok {
				Expect(err).To(HaveOccurred())
				return
			}
			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(want))
		},
		Entry("default", "", session.PolicyReject, true),
		Entry("reject", "reject", session.PolicyReject, true),
		Entry("supersede", "supersede", session.PolicySupersede, true),
		Entry("unknown", "queue", session.PolicyReject, false),
	)
})
