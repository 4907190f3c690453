package hardcover

import (
	"context"
	"encoding/json"
	"strconv"
)

const currentlyReadingQuery = `query ($userId: Int!) {
  user_books(where: {user_id: {_eq: $userId}, status_id: {_eq: 2}}, order_by: {id: desc}, limit: 10) {
    id book_id status_id edition_id privacy_setting_id rating
    user_book_reads(order_by: {id: asc}) { id started_at finished_at progress_pages edition_id }
    book { id title contributions { author { name } } image { url } }
    edition { id title isbn_10 isbn_13 pages publisher { name } image { url } }
  }
}`

// FetchCurrentlyReading returns the user's in-progress books as flat
// progress records, newest first, capped at 10. A book whose payload is
// missing is skipped; any other failure yields an empty slice.
func (c *Client) FetchCurrentlyReading(ctx context.Context) []ProgressRecord {
	userID := c.fetchUserID(ctx)
	if userID == 0 {
		return nil
	}

	// Thumbnails from the previous book set must not outlive it, and one
	// refresh cycle's memory stays bounded.
	c.covers.Reset()

	data, err := c.execute(ctx, currentlyReadingQuery, map[string]any{"userId": userID})
	if err != nil {
		c.log.Warn("fetching currently reading", "error", err)
		return nil
	}

	var payload struct {
		UserBooks []UserBook `json:"user_books"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		c.log.Warn("decoding currently reading", "error", err)
		return nil
	}

	records := make([]ProgressRecord, 0, len(payload.UserBooks))
	for _, ub := range payload.UserBooks {
		if ub.Book == nil {
			c.log.Debug("skipping user_book without book payload", "user_book_id", ub.ID)
			continue
		}
		rec := newProgressRecord(ub)
		if url := coverURL(ub); url != "" {
			rec.Cover = c.covers.Thumbnail(ctx, url)
		}
		records = append(records, rec)
	}
	c.log.Info("fetched currently reading", "count", len(records))
	return records
}

// newProgressRecord flattens one user_book into a ProgressRecord.
func newProgressRecord(ub UserBook) ProgressRecord {
	rec := ProgressRecord{
		ID:         strconv.Itoa(ub.ID),
		Title:      ub.Book.Title,
		Author:     "Unknown Author",
		BookID:     ub.Book.ID,
		UserBookID: ub.ID,
		EditionID:  ub.EditionID,
		BookTitle:  ub.Book.Title,
	}
	if ub.Edition != nil {
		if ub.Edition.Title != "" {
			rec.Title = ub.Edition.Title
		}
		rec.TotalPages = ub.Edition.Pages
	}
	if len(ub.Book.Contributions) > 0 {
		if a := ub.Book.Contributions[0].Author; a != nil && a.Name != "" {
			rec.Author = a.Name
		}
	}
	// Latest read = maximum id. Reads arrive ordered by id ascending, so
	// the last one carrying a page count wins.
	for i := len(ub.Reads) - 1; i >= 0; i-- {
		if p := ub.Reads[i].ProgressPages; p != nil {
			rec.CurrentPage = *p
			break
		}
	}
	if rec.TotalPages > 0 {
		rec.Progress = float64(rec.CurrentPage) / float64(rec.TotalPages)
	}
	return rec
}

// coverURL picks the edition image over the book image.
func coverURL(ub UserBook) string {
	if ub.Edition != nil && ub.Edition.Image != nil && ub.Edition.Image.URL != "" {
		return ub.Edition.Image.URL
	}
	if ub.Book != nil && ub.Book.Image != nil && ub.Book.Image.URL != "" {
		return ub.Book.Image.URL
	}
	return ""
}

const editionsQuery = `query ($bookId: Int!) {
  editions(where: {book_id: {_eq: $bookId}, _or: [{reading_format_id: {_is_null: true}}, {reading_format_id: {_neq: 2}}]}, order_by: {users_count: desc_nulls_last}) {
    id title isbn_10 isbn_13 pages release_date publisher { name } image { url }
  }
}`

// FetchEditions lists a book's editions, most-shelved first. Audiobook
// editions are excluded.
func (c *Client) FetchEditions(ctx context.Context, bookID int) []Edition {
	data, err := c.execute(ctx, editionsQuery, map[string]any{"bookId": bookID})
	if err != nil {
		c.log.Warn("fetching editions", "book_id", bookID, "error", err)
		return nil
	}
	var payload struct {
		Editions []Edition `json:"editions"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		c.log.Warn("decoding editions", "error", err)
		return nil
	}
	return payload.Editions
}
