package draft

import "github.com/finalwork/recipe-terminal/pkg/models"

// Reason identifies why a draft cannot be submitted
type Reason string

const (
	ReasonMissingName        Reason = "missing recipe name"
	ReasonMissingIngredient  Reason = "missing ingredient"
	ReasonMissingDescription Reason = "missing description"
	ReasonMissingDirections  Reason = "missing directions"
)

var reasonMessages = map[Reason]string{
	ReasonMissingName:        "Please enter the recipe name!",
	ReasonMissingIngredient:  "Please add at least one ingredient!",
	ReasonMissingDescription: "Please enter the recipe description!",
	ReasonMissingDirections:  "Please enter the recipe directions!",
}

// Message returns the text shown to the user for the reason
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return string(r)
}

// ValidationError reports the first failing check of Validate
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return e.Reason.Message()
}

// Validate checks the draft in a fixed order and returns the first problem
// found, or nil. The asset is never checked.
func Validate(d models.Draft) error {
	if d.Title == "" {
		return &ValidationError{Reason: ReasonMissingName}
	}
	if len(d.Ingredients) == 0 {
		return &ValidationError{Reason: ReasonMissingIngredient}
	}
	for _, ingredient := range d.Ingredients {
		if ingredient == "" {
			return &ValidationError{Reason: ReasonMissingIngredient}
		}
	}
	if d.Description == "" {
		return &ValidationError{Reason: ReasonMissingDescription}
	}
	if d.Directions == "" {
		return &ValidationError{Reason: ReasonMissingDirections}
	}
	return nil
}
