package bench_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sortviz/internal/algorithms"
	"github.com/san-kum/sortviz/internal/bench"
	"github.com/san-kum/sortviz/internal/config"
	"github.com/san-kum/sortviz/internal/trace"
)

var _ = Describe("Ensemble", func() {
	var reg *algorithms.Registry

	BeforeEach(func() {
		reg = algorithms.NewRegistry()
	})

	It("runs every algorithm over every size and seed", func() {
		samples, err := bench.NewEnsemble(reg, []int{5, 12}, 4, 100).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(len(algorithms.Names) * 2 * 4))

		for _, s := range samples {
			Expect(s.Seed).To(BeNumerically(">=", 100))
			Expect(s.Seed).To(BeNumerically("<", 104))
			if s.Inversions > 0 {
				Expect(s.Steps).To(BeNumerically(">", 0), s.Algorithm)
			}
		}
	})

	It("gives every algorithm the same inputs", func() {
		samples, err := bench.NewEnsemble(reg, []int{8}, 3, 7).Only("bubble", "insertion").Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		inversions := map[int64]int{}
		for _, s := range samples {
			if prev, ok := inversions[s.Seed]; ok {
				Expect(s.Inversions).To(Equal(prev))
			}
			inversions[s.Seed] = s.Inversions
		}
	})

	It("counts one bubble swap per inversion", func() {
		samples, err := bench.NewEnsemble(reg, []int{9}, 5, 1).Only("bubble").Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		for _, s := range samples {
			Expect(s.Swaps).To(Equal(s.Inversions))
			Expect(s.Steps).To(Equal(3 * s.Inversions))
		}
	})

	It("rejects unknown algorithms", func() {
		_, err := bench.NewEnsemble(reg, []int{4}, 1, 1).Only("bogo").Run(context.Background())
		Expect(err).To(MatchError(trace.ErrInvalidAlgorithm))
	})

	DescribeTable("rejects sizes and run counts it cannot run",
		func(sizes []int, runs int, want string) {
			samples, err := bench.NewEnsemble(reg, sizes, runs, 1).Run(context.Background())
			Expect(err).To(MatchError(ContainSubstring(want)))
			Expect(samples).To(BeNil())
		},
		Entry("negative size", []int{4, -1}, 1, "size -1 out of range"),
		Entry("size above the limit", []int{config.MaxSize + 1}, 1, "out of range"),
		Entry("negative runs", []int{4}, -2, "runs must not be negative"),
	)

	It("accepts the boundary sizes", func() {
		samples, err := bench.NewEnsemble(reg, []int{0, config.MaxSize}, 1, 1).Only("quick").Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(samples).To(HaveLen(2))
	})
})

var _ = Describe("Summarize", func() {
	It("averages per algorithm and size in menu order", func() {
		samples := []bench.Sample{
			{Algorithm: "heap", Size: 4, Steps: 10, Swaps: 5, Inversions: 2},
			{Algorithm: "bubble", Size: 8, Steps: 30, Swaps: 10, Inversions: 10},
			{Algorithm: "bubble", Size: 4, Steps: 6, Swaps: 2, Inversions: 2},
			{Algorithm: "bubble", Size: 4, Steps: 12, Swaps: 4, Inversions: 4},
		}

		sums := bench.Summarize(samples)
		Expect(sums).To(HaveLen(3))
		Expect(sums[0].Algorithm).To(Equal("bubble"))
		Expect(sums[0].Size).To(Equal(4))
		Expect(sums[0].Runs).To(Equal(2))
		Expect(sums[0].MeanSteps).To(Equal(9.0))
		Expect(sums[0].MinSteps).To(Equal(6))
		Expect(sums[0].MaxSteps).To(Equal(12))
		Expect(sums[0].MeanSwaps).To(Equal(3.0))
		Expect(sums[0].StepsPerInversion).To(Equal(3.0))
		Expect(sums[1].Size).To(Equal(8))
		Expect(sums[2].Algorithm).To(Equal("heap"))
	})

	It("returns nothing for no samples", func() {
		Expect(bench.Summarize(nil)).To(BeEmpty())
	})
})
