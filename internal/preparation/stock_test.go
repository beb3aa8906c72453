package preparation

import "testing"

func TestValidateRemovalRejectsOversizedRequest(t *testing.T) {
	err := ValidateRemoval(5, 3)
	if err == nil {
		t.Fatalf("expected error when request exceeds stock")
	}
	if err.Error() != "Cannot remove - exceeds available stock" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidateRemovalAcceptsExactStock(t *testing.T) {
	if err := ValidateRemoval(3, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateMoveRejectsSameLocation(t *testing.T) {
	if err := ValidateMove(1, 10, "loc-a", "loc-a"); err == nil {
		t.Fatalf("expected error for identical source and destination")
	}
}

func TestValidateMoveRejectsOversizedRequest(t *testing.T) {
	if err := ValidateMove(11, 10, "loc-a", "loc-b"); err == nil {
		t.Fatalf("expected error when request exceeds stock")
	}
}

func TestValidateMoveAccepts(t *testing.T) {
	if err := ValidateMove(5, 10, "loc-a", "loc-b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRemainingClampsAtZero(t *testing.T) {
	if got := Remaining(2, 5); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := Remaining(5, 2); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestDestinationCandidatesUnionsAllLocations(t *testing.T) {
	stocks := []LocationStock{
		{LocationID: "l1", LocationName: "Fridge", Quantity: 4},
	}
	all := []LocationRef{
		{ID: "l1", Name: "Fridge"},
		{ID: "l2", Name: "Freezer"},
		{ID: "l3", Name: "Pantry"},
	}

	candidates := DestinationCandidates(stocks, all)

	if len(candidates) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(candidates))
	}
	if candidates[0].LocationID != "l1" || candidates[0].Quantity != 4 {
		t.Errorf("stock-holding location must keep its quantity: %+v", candidates[0])
	}
	for _, c := range candidates[1:] {
		if c.Quantity != 0 {
			t.Errorf("location %s without stock should show 0, got %v", c.LocationID, c.Quantity)
		}
	}
}
