package hardcover

import (
	"context"
	"strings"
	"testing"
)

func TestMutationOK(t *testing.T) {
	cases := []struct {
		name   string
		data   string
		path   string
		object string
		want   bool
	}{
		{"object present", `{"insert_user_book": {"user_book": {"id": 1}}}`, "insert_user_book", "user_book", true},
		{"container missing", `{}`, "insert_user_book", "user_book", false},
		{"object missing", `{"insert_user_book": {}}`, "insert_user_book", "user_book", false},
		{"embedded error", `{"insert_user_book": {"error": "book not found", "user_book": {"id": 1}}}`, "insert_user_book", "user_book", false},
		{"empty error string ok", `{"insert_user_book": {"error": "", "user_book": {"id": 1}}}`, "insert_user_book", "user_book", true},
		{"bare id container", `{"delete_user_book": {"id": 5}}`, "delete_user_book", "", true},
		{"bare container no id", `{"delete_user_book": {}}`, "delete_user_book", "", false},
	}
	for _, c := range cases {
		if got := mutationOK([]byte(c.data), c.path, c.object); got != c.want {
			t.Errorf("%s: mutationOK = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestClampRating(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{3.3, 3.5},
		{3.24, 3.0},
		{0, 0.5},
		{-2, 0.5},
		{6, 5.0},
		{4.75, 5.0},
		{2.5, 2.5},
	}
	for _, c := range cases {
		if got := ClampRating(c.in); got != c.want {
			t.Errorf("ClampRating(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFinishBookStampsExistingRead(t *testing.T) {
	var inserted, updated int
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "update_user_book("):
			return `{"data":{"update_user_book":{"user_book":{"id":9,"status_id":3}}}}`
		case strings.Contains(req.Query, "order_by: { id: desc }"):
			return `{"data":{"user_book_reads":[{"id":77,"finished_at":null}]}}`
		case strings.Contains(req.Query, "update_user_book_read("):
			updated++
			return `{"data":{"update_user_book_read":{"user_book_read":{"id":77,"finished_at":"2026-08-30"}}}}`
		case strings.Contains(req.Query, "insert_user_book_read("):
			inserted++
			return `{"data":{"insert_user_book_read":{"user_book_read":{"id":78}}}}`
		}
		t.Errorf("unexpected query: %s", req.Query)
		return `{"data":{}}`
	})

	if !c.FinishBook(context.Background(), 9, nil, nil, nil, nil) {
		t.Fatal("FinishBook = false, want true")
	}
	if updated != 1 || inserted != 0 {
		t.Errorf("updated %d, inserted %d; want the existing read stamped, no duplicate", updated, inserted)
	}
}

func TestFinishBookInsertsWhenNoReadExists(t *testing.T) {
	var inserted int
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "update_user_book("):
			return `{"data":{"update_user_book":{"user_book":{"id":9,"status_id":3}}}}`
		case strings.Contains(req.Query, "order_by: { id: desc }"):
			return `{"data":{"user_book_reads":[]}}`
		case strings.Contains(req.Query, "insert_user_book_read("):
			inserted++
			if req.Variables["pages"] != float64(240) {
				t.Errorf("pages = %v, want 240", req.Variables["pages"])
			}
			return `{"data":{"insert_user_book_read":{"user_book_read":{"id":78}}}}`
		}
		t.Errorf("unexpected query: %s", req.Query)
		return `{"data":{}}`
	})

	if !c.FinishBook(context.Background(), 9, nil, intp(240), nil, nil) {
		t.Fatal("FinishBook = false, want true")
	}
	if inserted != 1 {
		t.Errorf("inserted %d reads, want exactly 1", inserted)
	}
}

func TestFinishBookStatusFailureStopsEarly(t *testing.T) {
	var readLookups int
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "update_user_book("):
			return `{"data":{"update_user_book":{"error":"not yours"}}}`
		default:
			readLookups++
			return `{"data":{}}`
		}
	})

	if c.FinishBook(context.Background(), 9, nil, nil, nil, nil) {
		t.Fatal("FinishBook = true, want false when the status change fails")
	}
	if readLookups != 0 {
		t.Errorf("saw %d read lookups after a failed status change, want 0", readLookups)
	}
}

func TestFinishBookClampsRating(t *testing.T) {
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "UpdateUserBook("):
			obj, _ := req.Variables["object"].(map[string]any)
			if obj["rating"] != 5.0 {
				t.Errorf("rating = %v, want clamped 5.0", obj["rating"])
			}
			return `{"data":{"update_user_book":{"user_book":{"id":9}}}}`
		case strings.Contains(req.Query, "order_by: { id: desc }"):
			return `{"data":{"user_book_reads":[{"id":77}]}}`
		case strings.Contains(req.Query, "update_user_book_read("):
			return `{"data":{"update_user_book_read":{"user_book_read":{"id":77}}}}`
		}
		return `{"data":{}}`
	})

	rating := 9.3
	if !c.FinishBook(context.Background(), 9, nil, nil, nil, &rating) {
		t.Fatal("FinishBook = false, want true")
	}
}

func TestInsertReadNegativePage(t *testing.T) {
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		t.Errorf("unexpected request for negative page: %s", req.Query)
		return `{"data":{}}`
	})
	if c.InsertRead(context.Background(), 9, -1, nil) {
		t.Error("InsertRead = true for negative page, want false")
	}
}

func TestInsertReadUsesPinnedEdition(t *testing.T) {
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "GetUserBook"):
			return `{"data":{"user_books":[{"id":9,"book_id":3,"status_id":2,"edition_id":55}]}}`
		case strings.Contains(req.Query, "InsertUserBookRead"):
			if req.Variables["editionId"] != float64(55) {
				t.Errorf("editionId = %v, want pinned 55", req.Variables["editionId"])
			}
			if req.Variables["startedAt"] == "" {
				t.Error("startedAt missing")
			}
			return `{"data":{"insert_user_book_read":{"user_book_read":{"id":80}}}}`
		}
		t.Errorf("unexpected query: %s", req.Query)
		return `{"data":{}}`
	})

	if !c.InsertRead(context.Background(), 9, 50, nil) {
		t.Fatal("InsertRead = false, want true")
	}
}

func TestAddBookUsesAccountPrivacy(t *testing.T) {
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "account_privacy_setting_id"):
			return `{"data":{"me":[{"account_privacy_setting_id":3}]}}`
		case strings.Contains(req.Query, "InsertUserBook("):
			obj, _ := req.Variables["object"].(map[string]any)
			if obj["privacy_setting_id"] != float64(3) {
				t.Errorf("privacy_setting_id = %v, want 3", obj["privacy_setting_id"])
			}
			if obj["status_id"] != float64(StatusCurrentlyReading) {
				t.Errorf("status_id = %v, want currently reading", obj["status_id"])
			}
			return `{"data":{"insert_user_book":{"user_book":{"id":9}}}}`
		}
		t.Errorf("unexpected query: %s", req.Query)
		return `{"data":{}}`
	})

	if !c.AddBook(context.Background(), 3, nil) {
		t.Fatal("AddBook = false, want true")
	}
}

func TestUpdateEditionReinsertsUserBook(t *testing.T) {
	var reinserted bool
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		switch {
		case strings.Contains(req.Query, "GetUserBook"):
			return `{"data":{"user_books":[{"id":9,"book_id":3,"status_id":2,"privacy_setting_id":1}]}}`
		case strings.Contains(req.Query, "InsertUserBook("):
			reinserted = true
			obj, _ := req.Variables["object"].(map[string]any)
			if obj["edition_id"] != float64(60) || obj["book_id"] != float64(3) {
				t.Errorf("object = %v", obj)
			}
			return `{"data":{"insert_user_book":{"user_book":{"id":9}}}}`
		case strings.Contains(req.Query, "order_by: { id: desc }"):
			return `{"data":{"user_book_reads":[]}}`
		}
		t.Errorf("unexpected query: %s", req.Query)
		return `{"data":{}}`
	})

	if !c.UpdateEdition(context.Background(), 9, 60) {
		t.Fatal("UpdateEdition = false, want true")
	}
	if !reinserted {
		t.Error("user_book was not re-inserted with the new edition")
	}
}

func TestDeleteBook(t *testing.T) {
	c, _ := newTestClient(t, route(t, map[string]string{
		"delete_user_book(": `{"data":{"delete_user_book":{"id":9}}}`,
	}))
	if !c.DeleteBook(context.Background(), 9) {
		t.Error("DeleteBook = false, want true")
	}
}

func TestUpdateRatingClear(t *testing.T) {
	c, _ := newTestClient(t, func(req graphqlRequest) string {
		if v, present := req.Variables["rating"]; !present || v != nil {
			t.Errorf("rating variable = %v, want explicit null", v)
		}
		return `{"data":{"update_user_book":{"user_book":{"id":9}}}}`
	})
	if !c.UpdateRating(context.Background(), 9, nil) {
		t.Error("UpdateRating(clear) = false, want true")
	}
}
