package hardcover

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
)

// FetchReadingStats summarizes the user's finished books. With a nil year
// the window is all-time; otherwise only books with a read finished in that
// year count.
func (c *Client) FetchReadingStats(ctx context.Context, year *int) *ReadingStats {
	userID := c.fetchUserID(ctx)
	if userID == 0 {
		return nil
	}

	from, to := "1900-01-01", "2999-01-01"
	where := `{ user_id: { _eq: $userId }, status_id: { _eq: 3 } }`
	if year != nil {
		from = fmt.Sprintf("%04d-01-01", *year)
		to = fmt.Sprintf("%04d-12-31", *year)
		where = `{ user_id: { _eq: $userId }, status_id: { _eq: 3 },
      user_book_reads: { finished_at: { _is_null: false, _gte: $from, _lte: $to } } }`
	}

	query := `query ($userId: Int!) {
  user_books(where: ` + where + `) {
    id rating edition { pages }
  }
}`
	variables := map[string]any{"userId": userID}
	if year != nil {
		query = `query ($userId: Int!, $from: date!, $to: date!) {
  user_books(where: ` + where + `) {
    id rating edition { pages }
  }
}`
		variables["from"] = from
		variables["to"] = to
	}

	data, err := c.execute(ctx, query, variables)
	if err != nil {
		c.log.Warn("fetching reading stats", "error", err)
		return nil
	}
	books := gjson.GetBytes(data, "user_books")
	if !books.IsArray() {
		return nil
	}

	stats := &ReadingStats{FromDate: from, ToDate: to}
	var ratingSum float64
	var rated int
	for _, ub := range books.Array() {
		stats.BooksFinished++
		if pages := ub.Get("edition.pages"); pages.Type == gjson.Number {
			stats.Pages += max(0, int(pages.Int()))
		}
		if r := ub.Get("rating"); r.Type == gjson.Number {
			ratingSum += r.Float()
			rated++
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats
}
