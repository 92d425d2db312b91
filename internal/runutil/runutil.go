// internal/runutil/runutil.go
package runutil

import (
	"fmt"
	"runtime"
)

// EffectiveThreads maps 0 (or less) to all CPUs.
func EffectiveThreads(threads int) int {
	if threads <= 0 {
		return runtime.NumCPU()
	}
	return threads
}

// ResolveMaxGap decides the precomputed table width, returns (maxGap, warnings).
// Rules:
//   - maxGap <= 0 → every feasible gap (numAlignments)
//   - maxGap < numAlignments → widened to numAlignments with a warning
//   - otherwise maxGap is used as-is
func ResolveMaxGap(maxGap, numAlignments int) (int, []string) {
	if maxGap <= 0 {
		return numAlignments, nil
	}
	if maxGap < numAlignments {
		return numAlignments, []string{
			fmt.Sprintf("--max-gap %d is narrower than the %d feasible gaps; widening", maxGap, numAlignments),
		}
	}
	return maxGap, nil
}
