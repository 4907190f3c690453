package hardcover

import (
	"context"
	"encoding/json"
	"math"

	"github.com/tidwall/gjson"
)

// Mutations report boolean success. A mutation succeeded only when the
// response carries no errors array AND the expected result object is
// present; Hardcover additionally embeds an "error" string inside some
// mutation results, which counts as failure too.

// mutationOK inspects the mutation container at path: the container must
// exist, its embedded error string must be empty, and the expected result
// object (or the container's own id, when object is "") must be present.
func mutationOK(data []byte, path, object string) bool {
	container := gjson.GetBytes(data, path)
	if !container.Exists() {
		return false
	}
	if msg := container.Get("error"); msg.Type == gjson.String && msg.Str != "" {
		return false
	}
	if object == "" {
		return container.Get("id").Exists()
	}
	return container.Get(object).Exists()
}

func (c *Client) mutate(ctx context.Context, op, query string, variables map[string]any, path, object string) bool {
	data, err := c.execute(ctx, query, variables)
	if err != nil {
		c.log.Warn(op, "error", err)
		return false
	}
	if !mutationOK(data, path, object) {
		c.log.Warn(op, "error", "expected result object absent")
		return false
	}
	return true
}

const insertUserBookMutation = `mutation InsertUserBook($object: UserBookCreateInput!) {
  insert_user_book(object: $object) {
    error
    user_book { id book_id edition_id status_id privacy_setting_id }
  }
}`

// AddBook attaches a book to the currently-reading list.
func (c *Client) AddBook(ctx context.Context, bookID int, editionID *int) bool {
	privacy := c.fetchAccountPrivacy(ctx)
	object := map[string]any{
		"book_id":            bookID,
		"status_id":          StatusCurrentlyReading,
		"privacy_setting_id": privacy,
	}
	if editionID != nil {
		object["edition_id"] = *editionID
	}
	return c.mutate(ctx, "add book", insertUserBookMutation,
		map[string]any{"object": object}, "insert_user_book", "user_book")
}

// UpdateEdition reassigns a user-book to another edition. Hardcover models
// this as re-inserting the user_book with the new edition; afterwards the
// latest read record is best-effort restamped so progress follows the new
// edition.
func (c *Client) UpdateEdition(ctx context.Context, userBookID, editionID int) bool {
	ub := c.fetchUserBook(ctx, userBookID)
	if ub == nil || ub.BookID == 0 {
		return false
	}
	status := ub.StatusID
	if status == 0 {
		status = StatusCurrentlyReading
	}
	privacy := ub.PrivacyID
	if privacy == 0 {
		privacy = c.fetchAccountPrivacy(ctx)
	}
	ok := c.mutate(ctx, "update edition", insertUserBookMutation, map[string]any{
		"object": map[string]any{
			"book_id":            ub.BookID,
			"edition_id":         editionID,
			"status_id":          status,
			"privacy_setting_id": privacy,
		},
	}, "insert_user_book", "user_book")
	if !ok {
		return false
	}
	if !c.updateLatestReadEdition(ctx, userBookID, editionID) {
		c.log.Debug("latest read not restamped", "user_book_id", userBookID)
	}
	return true
}

func (c *Client) updateLatestReadEdition(ctx context.Context, userBookID, editionID int) bool {
	readID, ok := c.fetchLatestReadID(ctx, userBookID)
	if !ok {
		return false
	}
	return c.mutate(ctx, "restamp read edition", `mutation ($id: Int!, $edition: Int!) {
  update_user_book_read(id: $id, object: { edition_id: $edition }) {
    error
    user_book_read { id edition_id }
  }
}`, map[string]any{"id": readID, "edition": editionID}, "update_user_book_read", "user_book_read")
}

const insertReadMutation = `mutation InsertUserBookRead($id: Int!, $pages: Int, $editionId: Int, $startedAt: date) {
  insert_user_book_read(user_book_id: $id, user_book_read: {
    progress_pages: $pages,
    edition_id: $editionId,
    started_at: $startedAt,
  }) {
    error
    user_book_read { id progress_pages edition_id started_at finished_at }
  }
}`

// InsertRead logs a page-progress read, stamped with today's date. When no
// edition id is supplied the user-book's pinned edition is used.
func (c *Client) InsertRead(ctx context.Context, userBookID, page int, editionID *int) bool {
	if page < 0 {
		return false
	}
	target := editionID
	if target == nil {
		if ub := c.fetchUserBook(ctx, userBookID); ub != nil && ub.EditionID != 0 {
			target = &ub.EditionID
		}
	}
	variables := map[string]any{
		"id":        userBookID,
		"pages":     page,
		"startedAt": utcDateString(),
	}
	if target != nil {
		variables["editionId"] = *target
	}
	return c.mutate(ctx, "insert read", insertReadMutation, variables, "insert_user_book_read", "user_book_read")
}

// UpdateStatus moves a user-book to another reading status.
func (c *Client) UpdateStatus(ctx context.Context, userBookID, statusID int) bool {
	return c.mutate(ctx, "update status", `mutation ($id: Int!, $status: Int) {
  update_user_book(id: $id, object: { status_id: $status }) {
    error
    user_book { id status_id }
  }
}`, map[string]any{"id": userBookID, "status": statusID}, "update_user_book", "user_book")
}

// DeleteBook removes a user-book entirely.
func (c *Client) DeleteBook(ctx context.Context, userBookID int) bool {
	return c.mutate(ctx, "delete book", `mutation ($id: Int!) {
  delete_user_book(id: $id) { id }
}`, map[string]any{"id": userBookID}, "delete_user_book", "")
}

// UpdateRating sets the user's rating on a user-book; nil clears it.
func (c *Client) UpdateRating(ctx context.Context, userBookID int, rating *float64) bool {
	return c.mutate(ctx, "update rating", `mutation ($id: Int!, $rating: float8) {
  update_user_book(id: $id, object: { rating: $rating }) {
    error
    user_book { id rating }
  }
}`, map[string]any{"id": userBookID, "rating": rating}, "update_user_book", "user_book")
}

// updateUserBook sets status and, when non-nil, rating in one mutation so a
// second write cannot be overwritten server-side.
func (c *Client) updateUserBook(ctx context.Context, userBookID, statusID int, rating *float64) bool {
	object := map[string]any{"status_id": statusID}
	if rating != nil {
		object["rating"] = *rating
	}
	return c.mutate(ctx, "update user book", `mutation UpdateUserBook($id: Int!, $object: UserBookUpdateInput!) {
  update_user_book(id: $id, object: $object) {
    error
    user_book { id status_id rating }
  }
}`, map[string]any{"id": userBookID, "object": object}, "update_user_book", "user_book")
}

// ClampRating snaps a rating to the nearest half star within [0.5, 5.0].
func ClampRating(r float64) float64 {
	return math.Max(0.5, math.Min(5.0, math.Round(r*2)/2))
}

// FinishBook marks a user-book finished with today's date. The status (and
// optional rating) change first; then the most recent read record is
// stamped with the finished date, and only if that fails is a new finished
// read inserted. The fallback order avoids duplicating a read record that
// already exists.
func (c *Client) FinishBook(ctx context.Context, userBookID int, editionID *int, totalPages, currentPage *int, rating *float64) bool {
	var statusOK bool
	if rating != nil {
		clamped := ClampRating(*rating)
		statusOK = c.updateUserBook(ctx, userBookID, StatusFinished, &clamped)
	} else {
		statusOK = c.UpdateStatus(ctx, userBookID, StatusFinished)
	}
	if !statusOK {
		return false
	}

	today := utcDateString()
	if readID, ok := c.fetchLatestReadID(ctx, userBookID); ok {
		if c.updateReadFinishedAt(ctx, readID, today) {
			return true
		}
	}
	pages := totalPages
	if pages == nil {
		pages = currentPage
	}
	return c.insertFinishedRead(ctx, userBookID, editionID, pages, today)
}

func (c *Client) updateReadFinishedAt(ctx context.Context, readID int, finishedAt string) bool {
	return c.mutate(ctx, "stamp finished date", `mutation ($id: Int!, $finished: date) {
  update_user_book_read(id: $id, object: { finished_at: $finished }) {
    error
    user_book_read { id finished_at }
  }
}`, map[string]any{"id": readID, "finished": finishedAt}, "update_user_book_read", "user_book_read")
}

func (c *Client) insertFinishedRead(ctx context.Context, userBookID int, editionID, pages *int, finishedAt string) bool {
	variables := map[string]any{
		"id":         userBookID,
		"finishedAt": finishedAt,
	}
	if pages != nil {
		variables["pages"] = max(0, *pages)
	}
	if editionID != nil {
		variables["editionId"] = *editionID
	}
	return c.mutate(ctx, "insert finished read", `mutation InsertFinishedRead($id: Int!, $pages: Int, $editionId: Int, $finishedAt: date) {
  insert_user_book_read(user_book_id: $id, user_book_read: {
    progress_pages: $pages,
    edition_id: $editionId,
    finished_at: $finishedAt
  }) {
    error
    user_book_read { id progress_pages edition_id started_at finished_at }
  }
}`, variables, "insert_user_book_read", "user_book_read")
}

// fetchLatestReadID returns the id of the most recent read record for a
// user-book, by maximum id.
func (c *Client) fetchLatestReadID(ctx context.Context, userBookID int) (int, bool) {
	data, err := c.execute(ctx, `query ($id: Int!) {
  user_book_reads(where: { user_book_id: { _eq: $id } }, order_by: { id: desc }, limit: 1) {
    id finished_at
  }
}`, map[string]any{"id": userBookID})
	if err != nil {
		return 0, false
	}
	id := gjson.GetBytes(data, "user_book_reads.0.id")
	if !id.Exists() {
		return 0, false
	}
	return int(id.Int()), true
}

// fetchUserBook loads one user-book row by id, nil on any failure.
func (c *Client) fetchUserBook(ctx context.Context, userBookID int) *UserBook {
	data, err := c.execute(ctx, `query GetUserBook($id: Int!) {
  user_books(where: { id: { _eq: $id }}) {
    id book_id status_id edition_id privacy_setting_id rating
  }
}`, map[string]any{"id": userBookID})
	if err != nil {
		return nil
	}
	var payload struct {
		UserBooks []UserBook `json:"user_books"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || len(payload.UserBooks) == 0 {
		return nil
	}
	return &payload.UserBooks[0]
}

// fetchAccountPrivacy returns the account default privacy setting, falling
// back to public (1).
func (c *Client) fetchAccountPrivacy(ctx context.Context) int {
	data, err := c.execute(ctx, `{ me { account_privacy_setting_id } }`, nil)
	if err != nil {
		return 1
	}
	if v := gjson.GetBytes(data, "me.0.account_privacy_setting_id"); v.Exists() {
		return int(v.Int())
	}
	return 1
}
