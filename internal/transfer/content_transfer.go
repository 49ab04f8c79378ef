package transfer

type ProjectCreation struct {
	Niche    string `json:"niche"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
	Goals    string `json:"goals"`
}

type CalendarItemInput struct {
	Date        string `json:"date"`
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	Topic       string `json:"topic"`
}

type CalendarItemsCreation struct {
	Items []CalendarItemInput `json:"items"`
}

type HashtagRequest struct {
	Content string `json:"content"`
}

type RepurposeRequest struct {
	Platform string `json:"platform"`
	Content  string `json:"content"`
}

type TemplateApplyRequest struct {
	StartDate string `json:"start_date"`
}

type ResearchRequest struct {
	StartDate string `json:"start_date"`
}
