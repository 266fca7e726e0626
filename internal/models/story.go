package models

// StoryPage is one illustrated page of a story
type StoryPage struct {
	Scene string `json:"scene"`
	Text  string `json:"text"`
}

// Story is an immutable, paginated story record
type Story struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Pages []StoryPage `json:"pages"`
}
