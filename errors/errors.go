package errors

import "fmt"

var (
	ErrMissingColumn        = fmt.Errorf("missing required column")
	ErrUnsupportedInput     = fmt.Errorf("unsupported input file")
	ErrCategoryMismatch     = fmt.Errorf("category names differ between records")
	ErrInvalidCategoryValue = fmt.Errorf("invalid category value")
	ErrInvalidIdentifier    = fmt.Errorf("invalid sql identifier")
	ErrEmptyDataset         = fmt.Errorf("dataset has no rows")
	ErrNoCategories         = fmt.Errorf("dataset has no category columns")
	ErrEmptyGrid            = fmt.Errorf("hyperparameter grid is empty")
	ErrNotFitted            = fmt.Errorf("estimator is not fitted")
)
