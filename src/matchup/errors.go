package matchup

import "fmt"

// CatalogFetchError is returned when the base type catalog cannot be listed
type CatalogFetchError struct {
	Err error
}

func (e *CatalogFetchError) Error() string {
	return fmt.Sprintf("failed to list types: %v", e.Err)
}

func (e *CatalogFetchError) Unwrap() error {
	return e.Err
}

// TypeResolutionError is returned when a named or referenced type cannot be fetched
type TypeResolutionError struct {
	Name string
	Err  error
}

func (e *TypeResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve type '%s': %v", e.Name, e.Err)
}

func (e *TypeResolutionError) Unwrap() error {
	return e.Err
}

// OutputError is returned when writing the report fails
type OutputError struct {
	Err error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("failed to write report: %v", e.Err)
}

func (e *OutputError) Unwrap() error {
	return e.Err
}
