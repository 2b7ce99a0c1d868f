package models

// SearchParams captures the inputs of one search inside a scraping session.
type SearchParams struct {
	Keywords string
	Location string
}
