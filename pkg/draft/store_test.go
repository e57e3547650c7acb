package draft

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

func TestNewStoreStartsWithDefaultDraft(t *testing.T) {
	s := NewStore()
	d := s.Draft()

	if !reflect.DeepEqual(d, models.DefaultDraft()) {
		t.Errorf("expected default draft, got %+v", d)
	}
	if len(d.Ingredients) != 1 || d.Ingredients[0] != "" {
		t.Errorf("expected one empty ingredient, got %q", d.Ingredients)
	}
}

func TestSetField(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   string
		check   func(models.Draft) string
		wantErr bool
	}{
		{
			name:  "title",
			field: FieldTitle,
			value: "Soup",
			check: func(d models.Draft) string { return d.Title },
		},
		{
			name:  "description",
			field: FieldDescription,
			value: "Warm",
			check: func(d models.Draft) string { return d.Description },
		},
		{
			name:  "directions",
			field: FieldDirections,
			value: "Boil water",
			check: func(d models.Draft) string { return d.Directions },
		},
		{
			name:  "empty value is allowed",
			field: FieldTitle,
			value: "",
			check: func(d models.Draft) string { return d.Title },
		},
		{
			name:    "unknown field",
			field:   "servings",
			value:   "4",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := models.DefaultDraft()
			after, err := SetField(before, tt.field, tt.value)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownField) {
					t.Fatalf("expected ErrUnknownField, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := tt.check(after); got != tt.value {
				t.Errorf("expected %q, got %q", tt.value, got)
			}
			if !reflect.DeepEqual(before, models.DefaultDraft()) {
				t.Error("input draft was modified")
			}
		})
	}
}

func TestSetIngredientDoesNotMutateInput(t *testing.T) {
	before := models.Draft{Ingredients: []string{"Water", "Salt"}}
	after := SetIngredient(before, 1, "Pepper")

	if before.Ingredients[1] != "Salt" {
		t.Errorf("input changed: %q", before.Ingredients)
	}
	if after.Ingredients[1] != "Pepper" {
		t.Errorf("expected Pepper, got %q", after.Ingredients[1])
	}
}

func TestSetIngredientOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range index")
		}
	}()
	SetIngredient(models.DefaultDraft(), 3, "x")
}

func TestAddIngredientAppendsEmptySlot(t *testing.T) {
	d := AddIngredient(models.Draft{Ingredients: []string{"Water"}})

	if !reflect.DeepEqual(d.Ingredients, []string{"Water", ""}) {
		t.Errorf("unexpected ingredients %q", d.Ingredients)
	}
}

func TestRemoveIngredient(t *testing.T) {
	tests := []struct {
		name     string
		start    []string
		index    int
		want     []string
		expectOK bool
	}{
		{
			name:     "removes middle element keeping order",
			start:    []string{"a", "b", "c"},
			index:    1,
			want:     []string{"a", "c"},
			expectOK: true,
		},
		{
			name:     "removes last element",
			start:    []string{"a", "b"},
			index:    1,
			want:     []string{"a"},
			expectOK: true,
		},
		{
			name:     "first element is protected",
			start:    []string{"a", "b", "c"},
			index:    0,
			want:     []string{"a", "b", "c"},
			expectOK: false,
		},
		{
			name:     "single element is kept",
			start:    []string{"a"},
			index:    0,
			want:     []string{"a"},
			expectOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := RemoveIngredient(models.Draft{Ingredients: tt.start}, tt.index)
			if ok != tt.expectOK {
				t.Errorf("expected ok=%v, got %v", tt.expectOK, ok)
			}
			if !reflect.DeepEqual(d.Ingredients, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, d.Ingredients)
			}
		})
	}
}

func TestIngredientListNeverEmpties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewStore()

	for i := 0; i < 500; i++ {
		if rng.Intn(2) == 0 {
			s.AddIngredient()
		} else {
			n := s.IngredientCount()
			index := rng.Intn(n)
			before := s.Draft()
			removed := s.RemoveIngredient(index)
			if index == 0 && removed {
				t.Fatal("index 0 must never be removed")
			}
			if index == 0 && s.IngredientCount() != len(before.Ingredients) {
				t.Fatal("removing index 0 changed the list length")
			}
		}
		if s.IngredientCount() < 1 {
			t.Fatalf("ingredient list emptied at step %d", i)
		}
	}
}

func TestStoreDraftReturnsIndependentCopy(t *testing.T) {
	s := NewStore()
	snapshot := s.Draft()

	s.SetIngredient(0, "Flour")
	if err := s.SetField(FieldTitle, "Bread"); err != nil {
		t.Fatal(err)
	}

	if snapshot.Ingredients[0] != "" || snapshot.Title != "" {
		t.Errorf("snapshot changed after edits: %+v", snapshot)
	}
}

func TestStoreReset(t *testing.T) {
	s := NewStore()
	_ = s.SetField(FieldTitle, "Soup")
	s.AddIngredient()
	s.SetAsset(&models.Asset{Name: "soup.png", Data: []byte{1}})

	s.Reset()

	if !reflect.DeepEqual(s.Draft(), models.DefaultDraft()) {
		t.Errorf("expected default draft after reset, got %+v", s.Draft())
	}
}
