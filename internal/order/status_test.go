package order

import (
	"testing"
	"time"
)

func TestNextStatusFollowsWorkflow(t *testing.T) {
	cases := map[string]string{
		StatusPending: StatusInPrep,
		StatusInPrep:  StatusReady,
		StatusReady:   StatusServed,
		StatusServed:  "",
	}
	for current, want := range cases {
		if got := NextStatus(current); got != want {
			t.Errorf("NextStatus(%s) = %q, want %q", current, got, want)
		}
	}
}

func TestValidateTransitionRejectsSkip(t *testing.T) {
	if err := ValidateTransition(StatusPending, StatusReady); err == nil {
		t.Fatalf("expected error for skipped step")
	}
}

func TestValidateTransitionRejectsRegression(t *testing.T) {
	if err := ValidateTransition(StatusReady, StatusInPrep); err == nil {
		t.Fatalf("expected error for backwards transition")
	}
	if err := ValidateTransition(StatusInPrep, StatusInPrep); err == nil {
		t.Fatalf("expected error for no-op transition")
	}
}

func TestValidateTransitionAcceptsSingleStep(t *testing.T) {
	steps := [][2]string{
		{StatusPending, StatusInPrep},
		{StatusInPrep, StatusReady},
		{StatusReady, StatusServed},
	}
	for _, s := range steps {
		if err := ValidateTransition(s[0], s[1]); err != nil {
			t.Errorf("transition %s -> %s should pass: %v", s[0], s[1], err)
		}
	}
}

func TestBuildQueueCountsPrepDishes(t *testing.T) {
	now := time.Now()
	orders := []Order{
		{
			ID:        "o1",
			TableName: "T1",
			Status:    OrderPending,
			CreatedAt: now,
			Steps: []Step{
				{
					ID: "s1",
					Menus: []StepMenu{
						{ID: "sm1", ServiceType: ServicePrep, Status: StatusInPrep},
						{ID: "sm2", ServiceType: ServicePrep, Status: StatusReady},
						{ID: "sm3", ServiceType: ServiceDirect, Status: StatusInPrep},
						{ID: "sm4", ServiceType: ServicePrep, Status: StatusPending},
						{ID: "sm5", ServiceType: ServicePrep, Status: StatusServed},
					},
				},
			},
		},
	}

	summary := BuildQueue(orders)

	if len(summary.Cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(summary.Cards))
	}
	if summary.InPrep != 1 {
		t.Errorf("expected in_prep 1, got %d", summary.InPrep)
	}
	if summary.Ready != 1 {
		t.Errorf("expected ready 1, got %d", summary.Ready)
	}
	if summary.AwaitingServices != 1 {
		t.Errorf("expected 1 awaiting order, got %d", summary.AwaitingServices)
	}
}

func TestBuildQueueCountsDistinctOrders(t *testing.T) {
	orders := []Order{
		{
			ID: "o1",
			Steps: []Step{{Menus: []StepMenu{
				{ID: "sm1", ServiceType: ServicePrep, Status: StatusInPrep},
				{ID: "sm2", ServiceType: ServicePrep, Status: StatusInPrep},
			}}},
		},
		{
			ID: "o2",
			Steps: []Step{{Menus: []StepMenu{
				{ID: "sm3", ServiceType: ServicePrep, Status: StatusReady},
			}}},
		},
		{
			ID: "o3",
			Steps: []Step{{Menus: []StepMenu{
				{ID: "sm4", ServiceType: ServiceDirect, Status: StatusReady},
			}}},
		},
	}

	summary := BuildQueue(orders)

	if summary.AwaitingServices != 2 {
		t.Errorf("expected 2 distinct orders awaiting service, got %d", summary.AwaitingServices)
	}
	if summary.InPrep != 2 || summary.Ready != 1 {
		t.Errorf("unexpected counts: in_prep=%d ready=%d", summary.InPrep, summary.Ready)
	}
}

func TestBuildQueueEmptyOrders(t *testing.T) {
	summary := BuildQueue(nil)
	if summary.Cards == nil {
		t.Errorf("cards must serialize as [], not null")
	}
	if summary.InPrep != 0 || summary.Ready != 0 || summary.AwaitingServices != 0 {
		t.Errorf("expected zero counts, got %+v", summary)
	}
}
