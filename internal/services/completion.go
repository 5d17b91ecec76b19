package services

import "time"

// ResolveDueDate applies the completion rule and returns the due date a task
// must carry after a mutation.
//
//	prior  → next   requested due      result
//	false  → true   absent             now
//	false  → true   present            requested
//	true   → false  any                nil
//	true   → true   present            requested
//	true   → true   absent             existing (now when none is recorded)
//	false  → false  any                nil
//
// A nil requested value means the caller did not supply a due date. Creation
// is evaluated with wasCompleted false and existing nil.
func ResolveDueDate(wasCompleted, completed bool, requested, existing *time.Time, now time.Time) *time.Time {
	if !completed {
		return nil
	}

	if requested != nil {
		due := requested.UTC()
		return &due
	}

	if wasCompleted && existing != nil {
		due := *existing
		return &due
	}

	due := now.UTC()
	return &due
}
