package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxIdentifierLength bounds dataset ids, dimension names and parameter keys.
const maxIdentifierLength = 64

// datasetIDRegex matches Nomis dataset ids such as NM_1_1 or NM_2010_1.
var datasetIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(_[A-Za-z0-9]+)*$`)

// dimensionRegex matches dimension concepts (sex, geography, age_dur, ...).
var dimensionRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateDatasetID validates a dataset id before it is interpolated into a
// service URL path.
//
// The rules are conservative:
//   - No empty ids
//   - No control characters, slashes, dots or whitespace
//   - Maximum length of 64 characters
func ValidateDatasetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDataset, "dataset id cannot be empty")
	}
	if len(id) > maxIdentifierLength {
		return New(ErrCodeInvalidDataset, "dataset id too long (max %d characters)", maxIdentifierLength)
	}
	if !datasetIDRegex.MatchString(id) {
		return New(ErrCodeInvalidDataset, "invalid dataset id: %q", id)
	}
	return nil
}

// ValidateDimension validates a dimension name (e.g. "sex", "geography").
// Case is not significant; the service keys concepts in lower case.
func ValidateDimension(dim string) error {
	if dim == "" {
		return New(ErrCodeInvalidDimension, "dimension cannot be empty")
	}
	if len(dim) > maxIdentifierLength {
		return New(ErrCodeInvalidDimension, "dimension too long (max %d characters)", maxIdentifierLength)
	}
	if !dimensionRegex.MatchString(dim) {
		return New(ErrCodeInvalidDimension, "invalid dimension: %q", dim)
	}
	return nil
}

// ValidateParamKey validates a query parameter key supplied by a user.
// Values are percent-encoded on serialization, so only keys are checked.
func ValidateParamKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidParam, "parameter name cannot be empty")
	}
	if len(key) > maxIdentifierLength {
		return New(ErrCodeInvalidParam, "parameter name too long (max %d characters)", maxIdentifierLength)
	}
	for _, r := range key {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidParam, "parameter name contains invalid characters: %q", key)
		}
	}
	if strings.ContainsAny(key, "=&?#") {
		return New(ErrCodeInvalidParam, "parameter name contains reserved characters: %q", key)
	}
	return nil
}

// ValidateGeographyValue validates a geography code or comma-separated list
// of codes that will be placed in a URL path segment.
// An empty value is valid and selects the top-level geography listing.
func ValidateGeographyValue(value string) error {
	for _, r := range value {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "geography value contains invalid characters")
		}
	}
	if strings.Contains(value, "..") || strings.ContainsAny(value, "/\\?#%") {
		return New(ErrCodeInvalidInput, "invalid geography value: %q", value)
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
