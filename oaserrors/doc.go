// Package oaserrors provides structured error types for the ouroboros core.
//
// Import path: github.com/whitesnakegang/ouroboros/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types:
//
//   - [ParseError]: YAML parsing failures and structural issues
//   - [ReferenceError]: $ref resolution failures and circular references
//   - [ValidationError]: request validation failures
//   - [ResourceLimitError]: resource exhaustion (ref depth, cache size)
//   - [ConfigError]: invalid configuration or input options
//   - [ResponseDefinitionMissingError]: no success response defined to mock
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrResponseDefinitionMissing]: Matches any [ResponseDefinitionMissingError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	doc, err := loader.New("api.yaml").Read()
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // Handle parse error
//	}
//
// Extract error details with errors.As():
//
//	var refErr *oaserrors.ReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("Failed to resolve ref: %s\n", refErr.Ref)
//	    if refErr.IsCircular {
//	        // Handle circular reference specifically
//	    }
//	}
package oaserrors
