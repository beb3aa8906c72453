package order

import "khp/internal/httpx"

var statusOrder = map[string]int{
	StatusPending: 0,
	StatusInPrep:  1,
	StatusReady:   2,
	StatusServed:  3,
}

// NextStatus returns the status that follows current in the workflow, or ""
// when current is terminal or unknown.
func NextStatus(current string) string {
	switch current {
	case StatusPending:
		return StatusInPrep
	case StatusInPrep:
		return StatusReady
	case StatusReady:
		return StatusServed
	default:
		return ""
	}
}

// ValidateTransition enforces the linear workflow: one forward step at a
// time, no skips, no regressions.
func ValidateTransition(current, next string) error {
	cur, ok := statusOrder[current]
	if !ok {
		return httpx.NewValidationError("status", "unknown status")
	}
	want, ok := statusOrder[next]
	if !ok {
		return httpx.NewValidationError("status", "unknown status")
	}
	if want <= cur {
		return httpx.NewValidationError("status", "status cannot move backwards")
	}
	if want != cur+1 {
		return httpx.NewValidationError("status", "status cannot skip steps")
	}
	return nil
}

// BuildQueue assembles the kitchen view from a set of open orders. Only PREP
// step menus in IN_PREP or READY appear as cards; awaiting_services counts
// the distinct orders those cards belong to.
func BuildQueue(orders []Order) QueueSummary {
	summary := QueueSummary{Cards: []QueueCard{}}
	seen := map[string]bool{}
	for _, o := range orders {
		for _, step := range o.Steps {
			for _, sm := range step.Menus {
				if sm.ServiceType != ServicePrep {
					continue
				}
				if sm.Status != StatusInPrep && sm.Status != StatusReady {
					continue
				}
				summary.Cards = append(summary.Cards, QueueCard{
					StepMenu:  sm,
					OrderID:   o.ID,
					TableName: o.TableName,
					CreatedAt: o.CreatedAt,
				})
				switch sm.Status {
				case StatusInPrep:
					summary.InPrep++
				case StatusReady:
					summary.Ready++
				}
				if !seen[o.ID] {
					seen[o.ID] = true
					summary.AwaitingServices++
				}
			}
		}
	}
	return summary
}
