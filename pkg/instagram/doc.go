// Package instagram is the page fetcher for the followers endpoint.
//
// A Client issues exactly one GET per call and classifies the outcome:
//
//	page, err := client.FetchFollowersPage(ctx, cursor)
//	switch errors.TypeOf(err) {
//	case errors.ErrorTypeChallenge:
//	    // body was not JSON: the session likely needs refreshing
//	case errors.ErrorTypeHTTPStatus, errors.ErrorTypeNetwork:
//	    // transient; the cycle is abandoned
//	}
//
// Pagination cursors are kept as opaque tokens (Cursor); the first page of a
// cycle is requested with an empty cursor.
package instagram
