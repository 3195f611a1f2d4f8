package company

type CompanyResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	Industry   string `json:"industry,omitempty"`
	Location   string `json:"location,omitempty"`
	LogoURL    string `json:"logo_url,omitempty"`
	WebsiteURL string `json:"website_url,omitempty"`
}

type SearchResultResponse struct {
	CompanyResponse
	ReviewCount int64 `json:"review_count"`
}

type UpdateCompanyRequest struct {
	Industry   string `json:"industry"`
	Location   string `json:"location"`
	LogoURL    string `json:"logo_url" binding:"omitempty,url"`
	WebsiteURL string `json:"website_url" binding:"omitempty,url"`
}
