package catalog

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrLocationNotFound indicates a referenced location does not exist.
var ErrLocationNotFound = errors.New("location not found")

// ErrProductNotFound indicates a referenced product does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrNotWarehouse indicates storage was attached to a non-warehouse location.
var ErrNotWarehouse = errors.New("storage units can only be created at WAREHOUSE locations")

// ValidationError lists the fields of a create request that failed validation.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

func fromValidator(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Reason: err.Error()}
	}
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	return &ValidationError{Fields: fields}
}
