// Package trace provides the primitives shared by the sorting engine and its
// presentation adapters.
//
// The package defines the values that flow from an algorithm to whatever is
// watching it:
//
//   - [Sequence]: the integers being sorted
//   - [Step]: an immutable snapshot of a sequence plus 0-2 highlighted indices
//   - [Yield]: the callback an algorithm hands each Step to
//   - [Event]: a Step as delivered to observers, tagged with its session
//
// # Example
//
//	alg, _ := algorithms.NewRegistry().Get("quick")
//	for step := range trace.Steps(alg, trace.Sequence{4, 2, 7, 1, 3}) {
//		fmt.Println(step)
//	}
//
// # Thread Safety
//
// Steps are immutable once built and may be shared between goroutines.
// Sequences are plain slices and are not.
package trace
