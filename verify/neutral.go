package verify

import "fmt"

// CheckScratchNeutral compares tape snapshots taken before and after a macro
// ran. Every cell that changed and is not one of outputs is reported. Cells
// missing from the shorter snapshot read as zero.
func CheckScratchNeutral(before, after []byte, outputs ...int) []Issue {
	declared := make(map[int]bool, len(outputs))
	for _, o := range outputs {
		declared[o] = true
	}

	n := len(before)
	if len(after) > n {
		n = len(after)
	}

	var issues []Issue
	for i := 0; i < n; i++ {
		if declared[i] {
			continue
		}

		b, a := cellAt(before, i), cellAt(after, i)
		if a != b {
			issues = append(issues, Issue{
				Type:    IssueScratch,
				Pos:     -1,
				Cell:    i,
				Message: fmt.Sprintf("Cell %d changed from %d to %d", i, b, a),
				Details: map[string]interface{}{
					"before": b,
					"after":  a,
				},
			})
		}
	}

	return issues
}

func cellAt(snapshot []byte, i int) byte {
	if i < len(snapshot) {
		return snapshot[i]
	}
	return 0
}
