package verify

import (
	"fmt"

	"github.com/sarchlab/polyderiv/isa"
)

// RunLint performs static checks on a program.
// It validates loop structure (STRUCT) and cursor discipline (LAYOUT).
// Returns a list of issues found, or empty list if no issues.
func RunLint(p isa.Program, tape *TapeInfo) []Issue {
	var issues []Issue

	type frame struct {
		pos    int
		cursor int
	}
	var stack []frame

	cursor := 0
	reported := make(map[int]bool)

	for pos, op := range p {
		switch op {
		case isa.Right, isa.Left:
			if op == isa.Right {
				cursor++
			} else {
				cursor--
			}
			if tape != nil && tape.Reserved > 0 && !reported[cursor] &&
				(cursor < 0 || cursor >= tape.Reserved) {
				reported[cursor] = true
				issues = append(issues, Issue{
					Type: IssueLayout,
					Pos:  pos,
					Cell: cursor,
					Message: fmt.Sprintf(
						"Cursor leaves the reserved region: cell %d outside [0, %d)",
						cursor, tape.Reserved,
					),
					Details: map[string]interface{}{
						"cell":     cursor,
						"reserved": tape.Reserved,
					},
				})
			}

		case isa.LoopOpen:
			stack = append(stack, frame{pos: pos, cursor: cursor})

		case isa.LoopClose:
			if len(stack) == 0 {
				issues = append(issues, Issue{
					Type:    IssueStruct,
					Pos:     pos,
					Cell:    cursor,
					Message: fmt.Sprintf("Unmatched ] at position %d", pos),
				})
				continue
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if cursor != open.cursor {
				issues = append(issues, Issue{
					Type: IssueLayout,
					Pos:  pos,
					Cell: cursor,
					Message: fmt.Sprintf(
						"Loop at position %d moves the cursor by %d per iteration (cell %d to %d)",
						open.pos, cursor-open.cursor, open.cursor, cursor,
					),
					Details: map[string]interface{}{
						"open":  open.pos,
						"close": pos,
						"entry": open.cursor,
						"exit":  cursor,
					},
				})
				cursor = open.cursor
			}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		issues = append(issues, Issue{
			Type:    IssueStruct,
			Pos:     stack[i].pos,
			Cell:    stack[i].cursor,
			Message: fmt.Sprintf("Unmatched [ at position %d", stack[i].pos),
		})
	}

	return issues
}

// CountIssues counts the issues of one type.
func CountIssues(issues []Issue, t IssueType) int {
	n := 0
	for _, issue := range issues {
		if issue.Type == t {
			n++
		}
	}
	return n
}
