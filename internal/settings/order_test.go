package settings

import "testing"

func TestNormalizeTypesReindexesContiguously(t *testing.T) {
	types := []MenuType{
		{ID: "a", Name: "Starters", Position: 5},
		{ID: "b", Name: "Mains", Position: 2},
		{ID: "c", Name: "Desserts", Position: 9},
	}

	out := NormalizeTypes(types)

	if out[0].ID != "b" || out[1].ID != "a" || out[2].ID != "c" {
		t.Fatalf("wrong order: %v, %v, %v", out[0].ID, out[1].ID, out[2].ID)
	}
	for i, mt := range out {
		if mt.Position != i {
			t.Errorf("position %d expected at index %d, got %d", i, i, mt.Position)
		}
	}
}

func TestNormalizeTypesBreaksTiesByName(t *testing.T) {
	types := []MenuType{
		{ID: "a", Name: "Starters", Position: 0},
		{ID: "b", Name: "Desserts", Position: 0},
	}

	out := NormalizeTypes(types)

	if out[0].Name != "Desserts" {
		t.Errorf("tie should be broken alphabetically, got %s first", out[0].Name)
	}
}

func TestNormalizeTypesDoesNotMutateInput(t *testing.T) {
	types := []MenuType{
		{ID: "a", Name: "Starters", Position: 7},
	}

	NormalizeTypes(types)

	if types[0].Position != 7 {
		t.Errorf("input slice was mutated")
	}
}

func TestChangedTypesReturnsOnlyMovedRows(t *testing.T) {
	have := []MenuType{
		{ID: "a", Name: "Starters", Position: 0},
		{ID: "b", Name: "Mains", Position: 1},
		{ID: "c", Name: "Desserts", Position: 2},
	}
	want := []MenuType{
		{ID: "a", Name: "Starters", Position: 0},
		{ID: "b", Name: "Mains", Position: 2},
		{ID: "c", Name: "Desserts", Position: 1},
	}

	changed := ChangedTypes(have, want)

	if len(changed) != 2 {
		t.Fatalf("expected 2 changed rows, got %d", len(changed))
	}
	for _, mt := range changed {
		if mt.ID == "a" {
			t.Errorf("unmoved row must not be rewritten")
		}
	}
}

func TestNormalizeCategoriesReindexes(t *testing.T) {
	cats := []MenuCategory{
		{ID: "x", Name: "Wine", Position: 3},
		{ID: "y", Name: "Beer", Position: 1},
	}

	out := NormalizeCategories(cats)

	if out[0].ID != "y" || out[0].Position != 0 {
		t.Errorf("expected Beer first at position 0, got %+v", out[0])
	}
	if out[1].ID != "x" || out[1].Position != 1 {
		t.Errorf("expected Wine second at position 1, got %+v", out[1])
	}
}
