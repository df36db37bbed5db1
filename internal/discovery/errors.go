package discovery

import "fmt"

// FallbackUser labels jobs in the merged view whose owning tab has no user
// identity at all (abandoned spool entries, synthetic system tabs).
const FallbackUser = "unknown"

// LocationError records a discovery failure scoped to a single registry
// location. A failed location never aborts the overall pass; the aggregate
// view simply omits what could not be read.
type LocationError struct {
	Path string
	Err  error
}

func (e *LocationError) Error() string {
	return fmt.Sprintf("discover %s: %v", e.Path, e.Err)
}

func (e *LocationError) Unwrap() error {
	return e.Err
}
