package model

// Profile is a swipe subject. Profiles are read-only once loaded; the deck
// never mutates them.
type Profile struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Age       int      `json:"age"`
	Images    []string `json:"images"`
	Bio       string   `json:"bio"`
	About     string   `json:"about"`
	Distance  string   `json:"distance"`
	Location  string   `json:"location"`
	Job       string   `json:"job"`
	Education string   `json:"education"`
	Interests []string `json:"interests"`
}
