package dto

type ThemeResponse struct {
	Mode string `json:"mode"`
}

type SetThemeRequest struct {
	Mode string `json:"mode"`
}
