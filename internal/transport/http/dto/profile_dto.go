package dto

// ProfileResponse mirrors the card payload the mobile client renders.
type ProfileResponse struct {
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

type ProfilesPageResponse struct {
	Items []ProfileResponse `json:"items"`
}

type UpdateProfileRequest struct {
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
