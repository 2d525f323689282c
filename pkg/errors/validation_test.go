package errors

import (
	"strings"
	"testing"
)

func TestValidateDatasetID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"claimant count", "NM_1_1", false},
		{"census table", "NM_2010_1", false},
		{"lowercase", "nm_7_1", false},
		{"single token", "NM", false},

		{"empty", "", true},
		{"too long", "NM_" + strings.Repeat("1", 70), true},
		{"path traversal", "../NM_1_1", true},
		{"slash", "NM_1/1", true},
		{"dot suffix", "NM_1_1.data", true},
		{"space", "NM 1 1", true},
		{"trailing underscore", "NM_1_", true},
		{"control char", "NM\x01_1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDataset) {
				t.Errorf("ValidateDatasetID(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDimension(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"sex", "sex", false},
		{"upper concept", "GEOGRAPHY", false},
		{"underscore", "age_dur", false},

		{"empty", "", true},
		{"leading digit", "1sex", true},
		{"dash", "age-dur", true},
		{"slash", "sex/x", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimension(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimension(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateParamKey(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "time", false},
		{"underscore", "geography_code", false},
		{"dotted", "uid.x", false},

		{"empty", "", true},
		{"equals", "a=b", true},
		{"ampersand", "a&b", true},
		{"space", "a b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParamKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParamKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGeographyValue(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", false},
		{"type code", "2092957697TYPE460", false},
		{"composite", "1946157281,1946157282", false},
		{"postcode token", "POSTCODE|SW1A 1AA;486", false},

		{"slash", "1/2", true},
		{"traversal", "..", true},
		{"query", "1?x=2", true},
		{"null byte", "1\x002", true},
		{"percent", "2092957697%2C1", true},
		{"bare percent", "50%", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGeographyValue(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGeographyValue(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"https", "https://www.nomisweb.co.uk/api/v01/dataset/", false},
		{"http", "http://localhost:8080/", false},

		{"empty", "", true},
		{"ftp", "ftp://example.com", true},
		{"file", "file:///etc/passwd", true},
		{"javascript", "javascript:alert(1)", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDataset,
		ErrCodeInvalidDimension,
		ErrCodeInvalidParam,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeNotFound,
		ErrCodeDatasetNotFound,
		ErrCodeUnknownDimension,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
