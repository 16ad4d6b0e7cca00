package todo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/tasknest/internal/validation"
)

// Error kinds. Every error returned by tasknest wraps exactly one of these,
// so callers can classify failures with errors.Is.
var (
	// ErrValidation marks an invalid field value on construction or update.
	ErrValidation = errors.New("validation error")

	// ErrDuplicateName marks a project name collision.
	ErrDuplicateName = errors.New("name already exists")

	// ErrNotFound marks a reference to a project, todo, subtask, or template that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProtected marks an attempt to remove a reserved entity.
	ErrProtected = errors.New("protected")

	// ErrPersistence marks a storage read or write failure.
	ErrPersistence = errors.New("persistence error")
)

var (
	// ErrEmptyTitle is returned when a todo title is empty.
	ErrEmptyTitle = fmt.Errorf("%w: title cannot be empty", ErrValidation)

	// ErrTitleTooLong is returned when a todo title exceeds MaxTitleLength.
	ErrTitleTooLong = fmt.Errorf("%w: title exceeds maximum length", ErrValidation)

	// ErrInvalidPriority is returned when a priority is not low, medium, or high.
	ErrInvalidPriority = fmt.Errorf("%w: invalid priority", ErrValidation)

	// ErrInvalidCategory is returned when a category is not a known value.
	ErrInvalidCategory = fmt.Errorf("%w: invalid category", ErrValidation)

	// ErrInvalidRecurrence is returned when a recurrence is not a known value.
	ErrInvalidRecurrence = fmt.Errorf("%w: invalid recurrence", ErrValidation)

	// ErrMissingRecurrence is returned when a todo is marked recurring without a recurrence.
	ErrMissingRecurrence = fmt.Errorf("%w: recurring todo needs a recurrence", ErrValidation)

	// ErrInvalidDate is returned when a due date is not a YYYY-MM-DD string.
	ErrInvalidDate = fmt.Errorf("%w: invalid date", ErrValidation)

	// ErrEmptySubtaskTitle is returned when a subtask title is empty.
	ErrEmptySubtaskTitle = fmt.Errorf("%w: subtask title cannot be empty", ErrValidation)

	// ErrNegativeTimeSpent is returned when a time spent value is negative.
	ErrNegativeTimeSpent = fmt.Errorf("%w: time spent cannot be negative", ErrValidation)

	// ErrEmptyProjectName is returned when a project name is empty after trimming.
	ErrEmptyProjectName = fmt.Errorf("%w: project name cannot be empty", ErrValidation)

	// ErrSelfDependency is returned when a todo lists itself as a dependency.
	ErrSelfDependency = fmt.Errorf("%w: todo cannot depend on itself", ErrValidation)

	// ErrDependencyCycle is returned when dependencies would form a cycle.
	ErrDependencyCycle = fmt.Errorf("%w: dependency cycle", ErrValidation)

	// ErrUnknownDependency is returned when a new dependency names a todo that does not exist.
	ErrUnknownDependency = fmt.Errorf("%w: unknown dependency", ErrValidation)

	// ErrUnknownField is returned when decoded input carries an unrecognized field.
	ErrUnknownField = fmt.Errorf("%w: unknown field", ErrValidation)

	// ErrInvalidFilter is returned for an unknown filter kind.
	ErrInvalidFilter = fmt.Errorf("%w: invalid filter", ErrValidation)

	// ErrInvalidSortKey is returned for an unknown sort key.
	ErrInvalidSortKey = fmt.Errorf("%w: invalid sort key", ErrValidation)

	// ErrProjectNotFound is returned when a project with the given ID doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = fmt.Errorf("todo %w", ErrNotFound)

	// ErrSubtaskNotFound is returned when a subtask with the given ID doesn't exist.
	ErrSubtaskNotFound = fmt.Errorf("subtask %w", ErrNotFound)

	// ErrTemplateNotFound is returned when a template with the given ID doesn't exist.
	ErrTemplateNotFound = fmt.Errorf("template %w", ErrNotFound)

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches more than one entity.
	ErrAmbiguousIDPrefix = fmt.Errorf("ambiguous ID prefix: %w", ErrNotFound)

	// ErrDefaultProjectProtected is returned when deleting the default project.
	ErrDefaultProjectProtected = fmt.Errorf("default project is %w", ErrProtected)
)

// ValidateTitle checks if the title is valid.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, len(title), MaxTitleLength)
	}
	return nil
}

// ValidatePriority checks if the priority is valid.
func ValidatePriority(priority Priority) error {
	if !priority.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
	}
	return nil
}

// ValidateCategory checks if the category is valid.
func ValidateCategory(category Category) error {
	if !category.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidCategory, category, ValidCategories())
	}
	return nil
}

// ValidateRecurrence checks if the recurrence is valid.
func ValidateRecurrence(recurrence Recurrence) error {
	if !recurrence.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidRecurrence, recurrence, ValidRecurrences())
	}
	return nil
}

// ValidateDependencies checks that id does not appear in its own dependency list.
func ValidateDependencies(id string, dependencies []string) error {
	for _, dep := range dependencies {
		if dep == id {
			return ErrSelfDependency
		}
	}
	return nil
}

// ValidateTodo checks if a todo struct is valid.
func ValidateTodo(t *Todo) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}
	if err := ValidateCategory(t.Category); err != nil {
		return err
	}
	if err := ValidateRecurrence(t.Recurrence); err != nil {
		return err
	}
	if t.TimeSpent < 0 {
		return ErrNegativeTimeSpent
	}
	for _, subtask := range t.Subtasks {
		if strings.TrimSpace(subtask.Title) == "" {
			return ErrEmptySubtaskTitle
		}
	}
	return ValidateDependencies(t.ID, t.Dependencies)
}
