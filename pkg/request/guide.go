package request

import (
	"fmt"
	"io"
	"strings"
)

// WriteCaptureGuide explains how to capture a request file from a browser
func WriteCaptureGuide(w io.Writer) {
	rule := strings.Repeat("=", 70)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "CAPTURING A FOLLOWERS REQUEST")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "STEP 1: Log in at https://www.instagram.com and open the target profile")
	fmt.Fprintln(w, "STEP 2: Open Developer Tools (F12, or Cmd+Option+I on Mac) and select 'Network'")
	fmt.Fprintln(w, "STEP 3: Click 'followers' on the profile so the list loads")
	fmt.Fprintln(w, "STEP 4: Find the request to /api/v1/friendships/<id>/followers/")
	fmt.Fprintln(w, "STEP 5: Copy the raw request headers into a text file, e.g. request.txt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The file must start with the request line and contain these headers:")
	for _, h := range RequiredHeaders {
		fmt.Fprintf(w, "   - %s\n", h)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "WARNING: the Cookie header grants full access to the account.")
	fmt.Fprintln(w, "Never share the request file. Sessions expire, so capture a fresh one")
	fmt.Fprintln(w, "whenever the collector reports a security challenge.")
	fmt.Fprintln(w, rule)
}

// WriteQuickGuide prints the one-line reminder shown after a bad request file
func WriteQuickGuide(w io.Writer) {
	fmt.Fprintln(w, "F12 -> Network -> open followers list -> copy the friendships/<id>/followers/ request headers")
	fmt.Fprintf(w, "Need: %s. Run 'followsnap guide' for detailed steps.\n", strings.Join(RequiredHeaders, ", "))
}
