package instagram

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FollowersResponse is the body returned by the friendships followers endpoint
type FollowersResponse struct {
	Status    string `json:"status"`
	Users     []User `json:"users"`
	HasMore   bool   `json:"has_more"`
	NextMaxID Cursor `json:"next_max_id"`
}

// User is a single follower entry. Only the username is used.
type User struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
}

// Cursor is an opaque pagination token. The API has sent it both as a JSON
// string and as a number, so both decode to the same textual token.
type Cursor string

// UnmarshalJSON accepts a string, a number or null
func (c *Cursor) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = Cursor(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cursor must be a string or number: %w", err)
	}
	*c = Cursor(n.String())
	return nil
}

// IsZero reports whether the cursor is empty (first page)
func (c Cursor) IsZero() bool {
	return c == ""
}

// Page is the parsed result of one successful followers request
type Page struct {
	Usernames  []string
	HasMore    bool
	NextCursor Cursor
}

// toPage converts a decoded response into a Page
func (r *FollowersResponse) toPage() *Page {
	usernames := make([]string, 0, len(r.Users))
	for _, u := range r.Users {
		if u.Username != "" {
			usernames = append(usernames, u.Username)
		}
	}
	return &Page{
		Usernames:  usernames,
		HasMore:    r.HasMore,
		NextCursor: r.NextMaxID,
	}
}
