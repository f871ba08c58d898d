package dto

type ChatRequest struct {
	Question string `json:"question"`
	UserID   string `json:"user_id"`
}

type ChatResponse struct {
	UserID   string `json:"user_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Template is a canned prompt suggestion surfaced to the frontend.
type Template struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}
