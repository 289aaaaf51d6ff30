// Package mouser provides an HTTP client for the Mouser Search API.
//
// # Overview
//
// The Mouser API authenticates with a static API key sent as the apiKey
// query parameter. Searches are POSTs with a JSON body; the manufacturer
// list is a GET. Every response is a JSON envelope carrying an optional
// list of vendor error records next to an optional payload, and the API
// reports semantic failures (bad key, unknown part) inside HTTP 200
// responses.
//
// # Usage
//
//	client, err := mouser.NewClient(os.Getenv("MOUSER_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	parts, err := client.Search().Part(ctx, "595-SN74HC595N", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, p := range parts {
//	    fmt.Println(p.MouserPartNumber, p.Availability)
//	}
//
// # Errors
//
// Every error returned by [Search] and [Client] implements [Error] and is
// exactly one of [*TransportError], [*DecodeError], [*VendorError] or
// [*MessageError]. Use errors.As or a type switch to tell them apart:
//
//	var vendorErr *mouser.VendorError
//	if errors.As(err, &vendorErr) {
//	    for _, rec := range vendorErr.Records {
//	        fmt.Println(rec.Code, rec.Message)
//	    }
//	}
//
// # Credentials
//
// The API key is held in a [Secret], which renders as [REDACTED] in every
// fmt verb and JSON encoding. Transport error URLs and captured response
// text are scrubbed of the key before they reach the caller.
package mouser
