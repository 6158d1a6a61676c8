package model

import "fmt"

// Page is a single page of an ordered listing, shaped like a length-aware paginator.
type Page[T any] struct {
	CurrentPage  int     `json:"current_page"`
	Data         []T     `json:"data"`
	FirstPageURL string  `json:"first_page_url"`
	From         *int    `json:"from"`
	LastPage     int     `json:"last_page"`
	LastPageURL  string  `json:"last_page_url"`
	NextPageURL  *string `json:"next_page_url"`
	Path         string  `json:"path"`
	PerPage      int     `json:"per_page"`
	PrevPageURL  *string `json:"prev_page_url"`
	To           *int    `json:"to"`
	Total        int64   `json:"total"`
}

// NewPage builds a page from the rows of the requested page and the total row count.
// path is the listing URL without query string; it is used to render the page links.
func NewPage[T any](items []T, page, perPage int, total int64, path string) Page[T] {
	if items == nil {
		items = []T{}
	}
	lastPage := 1
	if perPage > 0 && total > 0 {
		lastPage = int((total + int64(perPage) - 1) / int64(perPage))
	}

	p := Page[T]{
		CurrentPage:  page,
		Data:         items,
		FirstPageURL: pageURL(path, 1),
		LastPage:     lastPage,
		LastPageURL:  pageURL(path, lastPage),
		Path:         path,
		PerPage:      perPage,
		Total:        total,
	}

	if len(items) > 0 {
		from := (page-1)*perPage + 1
		to := from + len(items) - 1
		p.From = &from
		p.To = &to
	}
	if page < lastPage {
		next := pageURL(path, page+1)
		p.NextPageURL = &next
	}
	if page > 1 {
		prev := pageURL(path, page-1)
		p.PrevPageURL = &prev
	}
	return p
}

func pageURL(path string, page int) string {
	return fmt.Sprintf("%s?page=%d", path, page)
}
