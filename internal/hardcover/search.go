package hardcover

import (
	"context"
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// SearchBooks is a thin pass-through over the API's search: one search
// request returns ranked book ids, a second hydrates them, and the hydrated
// list is re-sorted into the search ranking.
func (c *Client) SearchBooks(ctx context.Context, title, author string, page int) []SearchBook {
	q := strings.TrimSpace(title + " " + author)
	if q == "" {
		return nil
	}
	if page < 1 {
		page = 1
	}

	data, err := c.execute(ctx, `query ($query: String!, $page: Int!) {
  search(query: $query, per_page: 25, page: $page, query_type: "Book") {
    ids
  }
}`, map[string]any{"query": q, "page": page})
	if err != nil {
		c.log.Warn("searching books", "error", err)
		return nil
	}

	var ids []int
	gjson.GetBytes(data, "search.ids").ForEach(func(_, v gjson.Result) bool {
		if n, err := strconv.Atoi(v.String()); err == nil {
			ids = append(ids, n)
		}
		return true
	})
	if len(ids) == 0 {
		return nil
	}
	return c.hydrateBooks(ctx, ids)
}

func (c *Client) hydrateBooks(ctx context.Context, ids []int) []SearchBook {
	data, err := c.execute(ctx, `query ($ids: [Int!]) {
  books(where: { id: { _in: $ids }}) {
    id title contributions { author { name } } image { url }
  }
}`, map[string]any{"ids": ids})
	if err != nil {
		c.log.Warn("hydrating search results", "error", err)
		return nil
	}
	var payload struct {
		Books []SearchBook `json:"books"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil
	}

	rank := make(map[int]int, len(ids))
	for i, id := range ids {
		rank[id] = i
	}
	sort.SliceStable(payload.Books, func(i, j int) bool {
		return rank[payload.Books[i].ID] < rank[payload.Books[j].ID]
	})
	return payload.Books
}
