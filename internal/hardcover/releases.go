package hardcover

import (
	"context"
	"encoding/json"
	"sort"
	"time"
)

const wantToReadQuery = `query ($userId: Int!) {
  user_books(where: {user_id: {_eq: $userId}, status_id: {_eq: 1}}, order_by: {id: desc}) {
    id book_id edition_id
    edition { id title pages release_date image { url } }
    book { id title contributions { author { name } } image { url }
      editions { id title pages release_date image { url } } }
  }
}`

// FetchUpcomingReleases selects, per want-to-read entry, the earliest
// future edition release, globally sorted by release date and truncated to
// limit. Covers are fetched only for the surviving entries.
func (c *Client) FetchUpcomingReleases(ctx context.Context, limit int) []UpcomingRelease {
	userID := c.fetchUserID(ctx)
	if userID == 0 {
		return nil
	}
	data, err := c.execute(ctx, wantToReadQuery, map[string]any{"userId": userID})
	if err != nil {
		c.log.Warn("fetching want to read", "error", err)
		return nil
	}

	var payload struct {
		UserBooks []UserBook `json:"user_books"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		c.log.Warn("decoding want to read", "error", err)
		return nil
	}

	releases := selectUpcoming(payload.UserBooks, utcToday(), limit)
	for i := range releases {
		if releases[i].coverSource != "" {
			releases[i].Cover = c.covers.Thumbnail(ctx, releases[i].coverSource)
		}
	}
	c.log.Info("selected upcoming releases", "count", len(releases))
	return releases
}

// selectUpcoming applies the per-entry selection policy: the pinned edition
// wins when its release date is today or later, otherwise the earliest
// future edition of the underlying book; entries with neither contribute
// nothing. Dates in the past or missing are never candidates.
func selectUpcoming(entries []UserBook, today time.Time, limit int) []UpcomingRelease {
	var out []UpcomingRelease
	for _, ub := range entries {
		ed, date, ok := pickFutureEdition(ub, today)
		if !ok {
			continue
		}
		rel := UpcomingRelease{
			EditionID:   ed.ID,
			BookID:      ub.BookID,
			Title:       ed.Title,
			ReleaseDate: date,
		}
		if ub.Book != nil {
			rel.BookID = ub.Book.ID
			if rel.Title == "" {
				rel.Title = ub.Book.Title
			}
			if len(ub.Book.Contributions) > 0 {
				if a := ub.Book.Contributions[0].Author; a != nil {
					rel.Author = a.Name
				}
			}
		}
		if ed.Image != nil && ed.Image.URL != "" {
			rel.coverSource = ed.Image.URL
		} else if ub.Book != nil && ub.Book.Image != nil {
			rel.coverSource = ub.Book.Image.URL
		}
		out = append(out, rel)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].ReleaseDate.Equal(out[j].ReleaseDate) {
			return out[i].ReleaseDate.Before(out[j].ReleaseDate)
		}
		return out[i].EditionID < out[j].EditionID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// pickFutureEdition returns the entry's release candidate: the pinned
// edition if its date is in the future, else the earliest future edition of
// the book.
func pickFutureEdition(ub UserBook, today time.Time) (Edition, time.Time, bool) {
	if ub.Edition != nil {
		if d, ok := futureDate(ub.Edition.ReleaseDate, today); ok {
			return *ub.Edition, d, true
		}
	}
	if ub.Book == nil {
		return Edition{}, time.Time{}, false
	}
	var (
		best     Edition
		bestDate time.Time
		found    bool
	)
	for _, ed := range ub.Book.Editions {
		d, ok := futureDate(ed.ReleaseDate, today)
		if !ok {
			continue
		}
		if !found || d.Before(bestDate) {
			best, bestDate, found = ed, d, true
		}
	}
	return best, bestDate, found
}

func futureDate(s string, today time.Time) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	d, ok := parseDate(s)
	if !ok || d.Before(today) {
		return time.Time{}, false
	}
	return d, true
}
