package hardcover

import (
	"context"

	"github.com/tidwall/gjson"
)

const historyQuery = `query ($userId: Int!, $limit: Int!, $offset: Int!) {
  user_book_reads(
    where: { finished_at: { _is_null: false }, user_book: { user_id: { _eq: $userId } } },
    order_by: [{ finished_at: desc }, { id: desc }],
    limit: $limit,
    offset: $offset
  ) {
    id finished_at edition_id
    user_book {
      id book_id rating
      book { id title contributions { author { name } } image { url } }
      edition { id title image { url } }
    }
  }
}`

// FetchReadingHistory pages through the user's finished reads, newest
// first. Rows missing their book linkage or a parseable finished date are
// skipped.
func (c *Client) FetchReadingHistory(ctx context.Context, limit, offset int) []FinishedEntry {
	userID := c.fetchUserID(ctx)
	if userID == 0 {
		return nil
	}
	data, err := c.execute(ctx, historyQuery, map[string]any{
		"userId": userID, "limit": limit, "offset": offset,
	})
	if err != nil {
		c.log.Warn("fetching reading history", "error", err)
		return nil
	}

	var entries []FinishedEntry
	gjson.GetBytes(data, "user_book_reads").ForEach(func(_, read gjson.Result) bool {
		finished, ok := parseDate(read.Get("finished_at").String())
		if !ok {
			return true
		}
		ub := read.Get("user_book")
		bookID := ub.Get("book_id")
		if !bookID.Exists() {
			return true
		}

		entry := FinishedEntry{
			ReadID:     int(read.Get("id").Int()),
			BookID:     int(bookID.Int()),
			UserBookID: int(ub.Get("id").Int()),
			Rating:     ub.Get("rating").Float(),
			FinishedAt: finished,
		}

		entry.Title = ub.Get("edition.title").String()
		if entry.Title == "" {
			entry.Title = ub.Get("book.title").String()
		}
		if entry.Title == "" {
			entry.Title = "Unknown Title"
		}
		entry.Author = ub.Get("book.contributions.0.author.name").String()
		if entry.Author == "" {
			entry.Author = "Unknown Author"
		}

		url := ub.Get("edition.image.url").String()
		if url == "" {
			url = ub.Get("book.image.url").String()
		}
		if url != "" {
			entry.Cover = c.covers.Thumbnail(ctx, url)
		}

		entries = append(entries, entry)
		return true
	})
	return entries
}
