package models

type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// BusinessResources is the learning kit shown for one business model.
type BusinessResources struct {
	BusinessModel string     `json:"businessModel"`
	Courses       []Resource `json:"courses"`
	Tools         []Resource `json:"tools"`
	Communities   []Resource `json:"communities"`
	Books         []Resource `json:"books"`
}
