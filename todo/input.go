package todo

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CreateInput lists every field accepted when creating a todo.
// Zero values select defaults (priority medium, category general).
type CreateInput struct {
	Title        string     `json:"title" toml:"title"`
	Description  string     `json:"description" toml:"description"`
	DueDate      Date       `json:"dueDate" toml:"-"`
	Priority     Priority   `json:"priority" toml:"priority"`
	Notes        string     `json:"notes" toml:"notes"`
	Category     Category   `json:"category" toml:"category"`
	Tags         []string   `json:"tags" toml:"tags"`
	Dependencies []string   `json:"dependencies" toml:"dependencies"`
	Subtasks     []string   `json:"subtasks" toml:"subtasks"`
	Recurrence   Recurrence `json:"recurrence" toml:"recurrence"`
	TemplateID   string     `json:"templateId" toml:"-"`
}

// Validate checks the fields of a create request.
func (in CreateInput) Validate() error {
	if err := ValidateTitle(in.Title); err != nil {
		return err
	}
	if in.Priority != "" {
		if err := ValidatePriority(in.Priority); err != nil {
			return err
		}
	}
	if in.Category != "" {
		if err := ValidateCategory(in.Category); err != nil {
			return err
		}
	}
	if err := ValidateRecurrence(in.Recurrence); err != nil {
		return err
	}
	for _, title := range in.Subtasks {
		if strings.TrimSpace(title) == "" {
			return ErrEmptySubtaskTitle
		}
	}
	return nil
}

// UpdateInput describes a partial update. Nil pointers mean "don't update this field".
// A zero Date in DueDate clears the due date; in JSON that is written as "".
type UpdateInput struct {
	Title        *string     `json:"title"`
	Description  *string     `json:"description"`
	DueDate      *Date       `json:"dueDate"`
	Priority     *Priority   `json:"priority"`
	Notes        *string     `json:"notes"`
	Category     *Category   `json:"category"`
	Tags         *[]string   `json:"tags"`
	Dependencies *[]string   `json:"dependencies"`
	Recurrence   *Recurrence `json:"recurrence"`
	Completed    *bool       `json:"completed"`
}

// IsEmpty reports whether the update changes nothing.
func (in UpdateInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.DueDate == nil &&
		in.Priority == nil && in.Notes == nil && in.Category == nil &&
		in.Tags == nil && in.Dependencies == nil && in.Recurrence == nil &&
		in.Completed == nil
}

// Validate checks the fields present in an update request.
func (in UpdateInput) Validate() error {
	if in.Title != nil {
		if err := ValidateTitle(*in.Title); err != nil {
			return err
		}
	}
	if in.Priority != nil {
		if err := ValidatePriority(*in.Priority); err != nil {
			return err
		}
	}
	if in.Category != nil {
		if err := ValidateCategory(*in.Category); err != nil {
			return err
		}
	}
	if in.Recurrence != nil {
		if err := ValidateRecurrence(*in.Recurrence); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCreateInput reads a JSON create request, rejecting unknown fields.
func DecodeCreateInput(r io.Reader) (CreateInput, error) {
	var in CreateInput
	if err := decodeStrict(r, &in); err != nil {
		return CreateInput{}, err
	}
	return in, in.Validate()
}

// DecodeUpdateInput reads a JSON update request, rejecting unknown fields.
func DecodeUpdateInput(r io.Reader) (UpdateInput, error) {
	var in UpdateInput
	if err := decodeStrict(r, &in); err != nil {
		return UpdateInput{}, err
	}
	return in, in.Validate()
}

func decodeStrict(r io.Reader, dest any) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return fmt.Errorf("%w %s", ErrUnknownField, field)
		}
		if errors.Is(err, ErrValidation) {
			return err
		}
		return fmt.Errorf("%w: decode input: %v", ErrValidation, err)
	}
	return nil
}
