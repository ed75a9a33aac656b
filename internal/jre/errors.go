package jre

import "fmt"

// ExtractionError indicates the runtime archive could not be decoded.
type ExtractionError struct {
	Archive string
	Err     error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s: %v", e.Archive, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// LayoutError indicates no runtime root could be identified inside an
// extracted archive.
type LayoutError struct {
	Archive string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("no runtime directory found in %s", e.Archive)
}

// MissingEntryPointError indicates a runtime tree with no executable
// java entry point after layout normalization.
type MissingEntryPointError struct {
	Root string
}

func (e *MissingEntryPointError) Error() string {
	return fmt.Sprintf("no java entry point under %s", e.Root)
}
