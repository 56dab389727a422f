// Package request turns a raw HTTP request, copied from a browser's
// developer tools, into the endpoint and headers of a collection run.
//
// The captured credentials are used verbatim and never stored anywhere
// else.
package request
