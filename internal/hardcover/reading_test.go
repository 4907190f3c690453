package hardcover

import (
	"context"
	"testing"
)

func intp(n int) *int { return &n }

func TestNewProgressRecordLatestReadWins(t *testing.T) {
	ub := UserBook{
		ID:        9,
		EditionID: 55,
		Book:      &Book{ID: 3, Title: "A Book", Contributions: []Contribution{{Author: &Author{Name: "B. Author"}}}},
		Edition:   &Edition{ID: 55, Title: "A Book (Special Edition)", Pages: 180},
		Reads: []UserBookRead{
			{ID: 1, ProgressPages: intp(100)},
			{ID: 2, ProgressPages: intp(135)},
		},
	}

	rec := newProgressRecord(ub)
	if rec.CurrentPage != 135 {
		t.Errorf("CurrentPage = %d, want 135 from the highest-id read", rec.CurrentPage)
	}
	if rec.Progress != 0.75 {
		t.Errorf("Progress = %v, want 0.75", rec.Progress)
	}
	if rec.Title != "A Book (Special Edition)" {
		t.Errorf("Title = %q, want the edition title", rec.Title)
	}
	if rec.BookTitle != "A Book" {
		t.Errorf("BookTitle = %q, want the book title", rec.BookTitle)
	}
	if rec.Author != "B. Author" {
		t.Errorf("Author = %q", rec.Author)
	}
}

func TestNewProgressRecordSkipsNullPages(t *testing.T) {
	ub := UserBook{
		ID:   9,
		Book: &Book{ID: 3, Title: "A Book"},
		Reads: []UserBookRead{
			{ID: 1, ProgressPages: intp(40)},
			{ID: 2, ProgressPages: nil},
		},
	}
	rec := newProgressRecord(ub)
	if rec.CurrentPage != 40 {
		t.Errorf("CurrentPage = %d, want 40 from the last read with pages", rec.CurrentPage)
	}
}

func TestNewProgressRecordUnknownPages(t *testing.T) {
	ub := UserBook{
		ID:    9,
		Book:  &Book{ID: 3, Title: "A Book"},
		Reads: []UserBookRead{{ID: 1, ProgressPages: intp(40)}},
	}
	rec := newProgressRecord(ub)
	if rec.TotalPages != 0 || rec.Progress != 0 {
		t.Errorf("TotalPages = %d, Progress = %v; want 0, 0 with no edition", rec.TotalPages, rec.Progress)
	}
	if rec.Author != "Unknown Author" {
		t.Errorf("Author = %q, want placeholder", rec.Author)
	}
}

func TestCoverURLPrefersEdition(t *testing.T) {
	ub := UserBook{
		Book:    &Book{Image: &Image{URL: "book.jpg"}},
		Edition: &Edition{Image: &Image{URL: "edition.jpg"}},
	}
	if got := coverURL(ub); got != "edition.jpg" {
		t.Errorf("coverURL = %q, want edition.jpg", got)
	}
	ub.Edition.Image = nil
	if got := coverURL(ub); got != "book.jpg" {
		t.Errorf("coverURL = %q, want book.jpg fallback", got)
	}
}

func TestFetchCurrentlyReadingEndToEnd(t *testing.T) {
	c, _ := newTestClient(t, route(t, map[string]string{
		"me {": meResponse(7, "reader"),
		"status_id: {_eq: 2}": `{"data":{"user_books":[
			{"id": 9, "book_id": 3, "edition_id": 55,
			 "user_book_reads": [
				{"id": 1, "progress_pages": 100},
				{"id": 2, "progress_pages": 135}
			 ],
			 "book": {"id": 3, "title": "A Book",
			          "contributions": [{"author": {"name": "B. Author"}}]},
			 "edition": {"id": 55, "title": "A Book", "pages": 180}},
			{"id": 10, "book_id": 0, "book": null}
		]}}`,
	}))

	records := c.FetchCurrentlyReading(context.Background())
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1 (the bookless row is skipped)", len(records))
	}
	r := records[0]
	if r.CurrentPage != 135 || r.TotalPages != 180 || r.Progress != 0.75 {
		t.Errorf("progress = %d/%d (%v)", r.CurrentPage, r.TotalPages, r.Progress)
	}
	if r.UserBookID != 9 || r.BookID != 3 || r.EditionID != 55 {
		t.Errorf("ids = %+v", r)
	}
}

func TestFetchCurrentlyReadingUserResolutionFails(t *testing.T) {
	c, _ := newTestClient(t, route(t, map[string]string{
		"me {": `{"data":{"me":[]}}`,
	}))
	if got := c.FetchCurrentlyReading(context.Background()); got != nil {
		t.Errorf("records = %+v, want nil when the user cannot be resolved", got)
	}
}

func TestFetchEditions(t *testing.T) {
	c, _ := newTestClient(t, route(t, map[string]string{
		"me {": meResponse(7, "reader"),
		"editions(where:": `{"data":{"editions":[
			{"id": 1, "title": "Hardcover", "pages": 300, "isbn_13": "9780000000001"},
			{"id": 2, "title": "Paperback", "pages": 320}
		]}}`,
	}))

	eds := c.FetchEditions(context.Background(), 3)
	if len(eds) != 2 || eds[0].Title != "Hardcover" || eds[1].Pages != 320 {
		t.Errorf("editions = %+v", eds)
	}
}
