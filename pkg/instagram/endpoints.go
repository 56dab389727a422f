package instagram

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// BaseURL is the host every followers endpoint lives on
	BaseURL = "https://www.instagram.com"

	// FriendshipsPath prefixes the followers endpoint: /api/v1/friendships/{id}/followers/
	FriendshipsPath = "/api/v1/friendships/"

	// DefaultPageSize is the number of followers requested per page
	DefaultPageSize = 25

	// SearchSurface is sent with every page request, matching the web client
	SearchSurface = "follow_list_page"
)

// GetFollowersURL constructs the URL for one page of followers.
// An empty cursor requests the first page.
func GetFollowersURL(baseURL string, cursor Cursor, pageSize int) string {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if i := strings.IndexByte(baseURL, '?'); i >= 0 {
		baseURL = baseURL[:i]
	}

	// Order matches the captured browser request: count, max_id, search_surface
	var b strings.Builder
	b.WriteString(baseURL)
	b.WriteString("?count=")
	b.WriteString(strconv.Itoa(pageSize))
	b.WriteString("&max_id=")
	b.WriteString(url.QueryEscape(string(cursor)))
	b.WriteString("&search_surface=")
	b.WriteString(SearchSurface)
	return b.String()
}

// GetFollowersEndpoint builds the followers endpoint for a numeric account id
func GetFollowersEndpoint(host, targetID string) string {
	if host == "" {
		host = BaseURL
	}
	return strings.TrimRight(host, "/") + FriendshipsPath + targetID + "/followers/"
}
