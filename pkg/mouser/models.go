package mouser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Part is one catalog entry from a part search.
//
// The API does not guarantee any field per result, so every field is
// optional: strings are empty when absent and AvailabilityInStock is nil.
type Part struct {
	Availability           string  `json:"Availability,omitempty"`
	DataSheetURL           string  `json:"DataSheetUrl,omitempty"`
	Description            string  `json:"Description,omitempty"`
	FactoryStock           string  `json:"FactoryStock,omitempty"`
	ImagePath              string  `json:"ImagePath,omitempty"`
	Category               string  `json:"Category,omitempty"`
	LeadTime               string  `json:"LeadTime,omitempty"`
	LifecycleStatus        string  `json:"LifecycleStatus,omitempty"`
	Manufacturer           string  `json:"Manufacturer,omitempty"`
	ManufacturerPartNumber string  `json:"ManufacturerPartNumber,omitempty"`
	MouserPartNumber       string  `json:"MouserPartNumber,omitempty"`
	ROHSStatus             string  `json:"ROHSStatus,omitempty"`
	AvailabilityInStock    *uint32 `json:"AvailabilityInStock,omitempty"`
}

// UnmarshalJSON decodes a Part, accepting AvailabilityInStock as either a
// JSON number or a numeric string. Null and "" leave it nil.
func (p *Part) UnmarshalJSON(data []byte) error {
	type alias Part
	aux := struct {
		*alias
		AvailabilityInStock json.RawMessage `json:"AvailabilityInStock"`
	}{alias: (*alias)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	n, err := parseOptionalCount(aux.AvailabilityInStock)
	if err != nil {
		return fmt.Errorf("AvailabilityInStock: %w", err)
	}
	p.AvailabilityInStock = n
	return nil
}

func parseOptionalCount(raw json.RawMessage) (*uint32, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, nil
		}
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, err
	}
	n := uint32(v)
	return &n, nil
}

// Manufacturer is one entry of the manufacturer list.
// Some vendor records carry no numeric id.
type Manufacturer struct {
	ManufacturerName string  `json:"ManufacturerName"`
	ManufacturerID   *uint64 `json:"ManufacturerId,omitempty"`
}

// UnmarshalJSON decodes a Manufacturer, rejecting records without a name.
func (m *Manufacturer) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "ManufacturerName"); err != nil {
		return err
	}
	type alias Manufacturer
	return json.Unmarshal(data, (*alias)(m))
}

// ErrorRecord is a structured error reported by the API inside a response body.
// Id, Code, Message and ResourceKey are always present.
type ErrorRecord struct {
	ID                    int    `json:"Id"`
	Code                  string `json:"Code"`
	Message               string `json:"Message"`
	ResourceKey           string `json:"ResourceKey"`
	ResourceFormatString  string `json:"ResourceFormatString,omitempty"`
	ResourceFormatString2 string `json:"ResourceFormatString2,omitempty"`
	PropertyName          string `json:"PropertyName,omitempty"`
}

// String renders the record as "code: message".
func (r ErrorRecord) String() string {
	switch {
	case r.Code == "":
		return r.Message
	case r.Message == "":
		return r.Code
	default:
		return r.Code + ": " + r.Message
	}
}

// UnmarshalJSON decodes an ErrorRecord, rejecting records that lack any of
// Id, Code, Message or ResourceKey.
func (r *ErrorRecord) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "Id", "Code", "Message", "ResourceKey"); err != nil {
		return err
	}
	type alias ErrorRecord
	return json.Unmarshal(data, (*alias)(r))
}

// ManufacturerListResponse is the envelope returned by search/manufacturerlist.
type ManufacturerListResponse struct {
	Errors                 []ErrorRecord     `json:"Errors,omitempty"`
	MouserManufacturerList *ManufacturerList `json:"MouserManufacturerList,omitempty"`
}

// ManufacturerList is the manufacturer-list payload.
type ManufacturerList struct {
	Count            uint32         `json:"Count"`
	ManufacturerList []Manufacturer `json:"ManufacturerList"`
}

// UnmarshalJSON decodes a ManufacturerList; Count and ManufacturerList are required.
func (l *ManufacturerList) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "Count", "ManufacturerList"); err != nil {
		return err
	}
	type alias ManufacturerList
	return json.Unmarshal(data, (*alias)(l))
}

// PartSearchResult is the envelope returned by the part-number searches.
type PartSearchResult struct {
	Errors        []ErrorRecord       `json:"Errors,omitempty"`
	SearchResults *PartSearchResponse `json:"SearchResults,omitempty"`
}

// PartSearchResponse is the part-search payload.
type PartSearchResponse struct {
	NumberOfResult int    `json:"NumberOfResult"`
	Parts          []Part `json:"Parts"`
}

// UnmarshalJSON decodes a PartSearchResponse; NumberOfResult and Parts are required.
func (r *PartSearchResponse) UnmarshalJSON(data []byte) error {
	if err := requireKeys(data, "NumberOfResult", "Parts"); err != nil {
		return err
	}
	type alias PartSearchResponse
	return json.Unmarshal(data, (*alias)(r))
}

// requireKeys checks that the JSON object in data sets every one of keys to
// a non-null value. Key matching is exact.
func requireKeys(data []byte, keys ...string) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return fmt.Errorf("missing required field %q", key)
		}
	}
	return nil
}

type partNumberRequest struct {
	SearchByPartRequest partNumberQuery `json:"SearchByPartRequest"`
}

type partNumberQuery struct {
	MouserPartNumber string `json:"mouserPartNumber"`
}

type partNumberMfrRequest struct {
	SearchByPartMfrRequest partNumberMfrQuery `json:"SearchByPartMfrRequest"`
}

type partNumberMfrQuery struct {
	ManufacturerID   uint64 `json:"manufacturerId"`
	MouserPartNumber string `json:"mouserPartNumber"`
}
