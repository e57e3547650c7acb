// Package draft holds the recipe draft being edited and the rules that
// decide whether it can be submitted.
//
// The functions in this package never modify a Draft they were given. Each
// one returns a new value reflecting exactly one user action, so a snapshot
// taken for submission is not affected by later edits.
package draft

import (
	"errors"
	"fmt"

	"github.com/finalwork/recipe-terminal/pkg/models"
)

// Scalar field names accepted by SetField
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDirections  = "directions"
)

// ErrUnknownField is returned by SetField for names other than the scalar fields
var ErrUnknownField = errors.New("unknown draft field")

// SetField replaces one of the scalar text fields. Empty values are allowed;
// the validator rejects them at submit time.
func SetField(d models.Draft, name, value string) (models.Draft, error) {
	out := d.Clone()
	switch name {
	case FieldTitle:
		out.Title = value
	case FieldDescription:
		out.Description = value
	case FieldDirections:
		out.Directions = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return out, nil
}

// SetIngredient replaces the ingredient at index.
// An index outside the list is a caller bug and panics.
func SetIngredient(d models.Draft, index int, value string) models.Draft {
	mustIndex(d, index)
	out := d.Clone()
	out.Ingredients[index] = value
	return out
}

// AddIngredient appends an empty ingredient slot
func AddIngredient(d models.Draft) models.Draft {
	out := d.Clone()
	out.Ingredients = append(out.Ingredients, "")
	return out
}

// CanRemoveIngredient reports whether the ingredient at index may be removed.
// The first slot is always kept, which also keeps the list non-empty.
func CanRemoveIngredient(d models.Draft, index int) bool {
	return index > 0 && index < len(d.Ingredients) && len(d.Ingredients) > 1
}

// RemoveIngredient removes the ingredient at index. It returns the draft
// unchanged and false when index is 0 or the list has a single element.
func RemoveIngredient(d models.Draft, index int) (models.Draft, bool) {
	if index == 0 || len(d.Ingredients) <= 1 {
		return d, false
	}
	mustIndex(d, index)
	out := d.Clone()
	out.Ingredients = append(out.Ingredients[:index], out.Ingredients[index+1:]...)
	return out, true
}

// SetAsset replaces the attached asset. Only the asset manager should call
// this so the preview handle stays in step with the draft.
func SetAsset(d models.Draft, a *models.Asset) models.Draft {
	out := d.Clone()
	out.Asset = a
	return out
}

func mustIndex(d models.Draft, index int) {
	if index < 0 || index >= len(d.Ingredients) {
		panic(fmt.Sprintf("draft: ingredient index %d out of range [0,%d)", index, len(d.Ingredients)))
	}
}

// Store holds the canonical draft for one form instance. Every method
// replaces the held value; Draft returns a copy callers may keep.
type Store struct {
	current models.Draft
}

// NewStore creates a store holding the default draft
func NewStore() *Store {
	return &Store{current: models.DefaultDraft()}
}

// Draft returns a snapshot of the current draft
func (s *Store) Draft() models.Draft {
	return s.current.Clone()
}

// SetField replaces title, description or directions
func (s *Store) SetField(name, value string) error {
	next, err := SetField(s.current, name, value)
	if err != nil {
		return err
	}
	s.current = next
	return nil
}

// SetIngredient replaces the ingredient at index
func (s *Store) SetIngredient(index int, value string) {
	s.current = SetIngredient(s.current, index, value)
}

// AddIngredient appends an empty ingredient and returns its index
func (s *Store) AddIngredient() int {
	s.current = AddIngredient(s.current)
	return len(s.current.Ingredients) - 1
}

// RemoveIngredient removes the ingredient at index if allowed
func (s *Store) RemoveIngredient(index int) bool {
	next, ok := RemoveIngredient(s.current, index)
	s.current = next
	return ok
}

// SetAsset replaces the attached asset
func (s *Store) SetAsset(a *models.Asset) {
	s.current = SetAsset(s.current, a)
}

// Reset restores the default draft
func (s *Store) Reset() {
	s.current = models.DefaultDraft()
}

// IngredientCount returns the number of ingredient slots
func (s *Store) IngredientCount() int {
	return len(s.current.Ingredients)
}
