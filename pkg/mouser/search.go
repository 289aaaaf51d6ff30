package mouser

import (
	"context"

	"github.com/matzehuels/mouser/pkg/errors"
)

// Endpoints, relative to the client's base URL.
const (
	EndpointManufacturerList = "search/manufacturerlist"
	EndpointPartNumber       = "search/partnumber"
	EndpointPartNumberAndMfr = "search/partnumberandmanufacturer"
)

// Search exposes the typed search operations of a [Client].
// Each call performs exactly one HTTP round trip.
type Search struct {
	client *Client
}

// ManufacturerList returns every manufacturer known to the API.
//
// Returns:
//   - [*TransportError] if the request could not be completed
//   - [*DecodeError] if the body is not a manufacturer-list envelope
//   - [*VendorError] if the envelope carries error records
//   - [*MessageError] with [errors.ErrCodeEmptyResponse] if the payload is missing
func (s *Search) ManufacturerList(ctx context.Context) ([]Manufacturer, error) {
	body, err := s.client.GetText(ctx, EndpointManufacturerList)
	if err != nil {
		return nil, err
	}

	var resp ManufacturerListResponse
	if err := s.client.ParseResponse(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, &VendorError{Records: resp.Errors}
	}
	if resp.MouserManufacturerList == nil {
		return nil, newMessageError(errors.ErrCodeEmptyResponse, "manufacturer list response has no payload")
	}

	s.client.logger.Debug("manufacturer list", "count", resp.MouserManufacturerList.Count)
	return resp.MouserManufacturerList.ManufacturerList, nil
}

// Part looks up partNumber. When manufacturerID is non-nil the search is
// scoped to that manufacturer and uses the partnumberandmanufacturer
// endpoint; otherwise the plain partnumber endpoint.
//
// A non-empty error list in the response yields a [*VendorError] even if
// results are also present. A response with neither yields a
// [*MessageError] with [errors.ErrCodeEmptyResponse].
func (s *Search) Part(ctx context.Context, partNumber string, manufacturerID *uint64) ([]Part, error) {
	endpoint, req := partRequest(partNumber, manufacturerID)

	body, err := s.client.PostJSON(ctx, endpoint, req)
	if err != nil {
		return nil, err
	}

	var resp PartSearchResult
	if err := s.client.ParseResponse(body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, &VendorError{Records: resp.Errors}
	}
	if resp.SearchResults == nil {
		return nil, newMessageError(errors.ErrCodeEmptyResponse, "part search response has no results")
	}

	s.client.logger.Debug("part search", "part_number", partNumber, "results", resp.SearchResults.NumberOfResult)
	return resp.SearchResults.Parts, nil
}

func partRequest(partNumber string, manufacturerID *uint64) (string, any) {
	if manufacturerID != nil {
		return EndpointPartNumberAndMfr, partNumberMfrRequest{
			SearchByPartMfrRequest: partNumberMfrQuery{
				ManufacturerID:   *manufacturerID,
				MouserPartNumber: partNumber,
			},
		}
	}
	return EndpointPartNumber, partNumberRequest{
		SearchByPartRequest: partNumberQuery{MouserPartNumber: partNumber},
	}
}
