package nomisweb

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Response is the envelope of every *.def.sdmx.json document.
type Response struct {
	Structure Structure `json:"structure"`
}

// Structure holds either a dataset listing (KeyFamilies) or a codelist
// listing (CodeLists). Absent sections decode as nil.
type Structure struct {
	Header      Header       `json:"header"`
	KeyFamilies *KeyFamilies `json:"keyfamilies,omitempty"`
	CodeLists   *CodeLists   `json:"codelists,omitempty"`
}

// Header identifies the document. For codelist documents ID carries the
// dataset the codes belong to.
type Header struct {
	ID       string `json:"id"`
	Prepared string `json:"prepared,omitempty"`
}

type KeyFamilies struct {
	KeyFamily []KeyFamily `json:"keyfamily"`
}

// KeyFamily is one dataset in the listing.
type KeyFamily struct {
	AgencyID    string     `json:"agencyid"`
	ID          string     `json:"id"`
	Name        Text       `json:"name"`
	Description *Text      `json:"description,omitempty"`
	Components  Components `json:"components"`
}

type Components struct {
	Dimension []DimensionRef `json:"dimension"`
}

// DimensionRef declares one dimension of a dataset. ConceptRef is upper case
// (e.g. "GEOGRAPHY").
type DimensionRef struct {
	Codelist   string `json:"codelist"`
	ConceptRef string `json:"conceptref"`
}

type CodeLists struct {
	CodeList []CodeList `json:"codelist"`
}

type CodeList struct {
	AgencyID string `json:"agencyid"`
	ID       string `json:"id"`
	Name     Text   `json:"name"`
	Code     []Code `json:"code"`
}

type Code struct {
	Description Text  `json:"description"`
	Value       Value `json:"value"`
}

// Text is a localised string ({"value": "...", "lang": "en"}).
type Text struct {
	Value string `json:"value"`
	Lang  string `json:"lang,omitempty"`
}

// Value is a code value. The service emits codes as JSON numbers
// (2092957697) or strings ("2092957697TYPE464"); both decode to their
// literal text with no exponent or decimal point added.
type Value string

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*v = ""
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("code value %s: %w", data, err)
	}
	*v = Value(n.String())
	return nil
}
