package hardcover

import "time"

// ProgressRecord is the flat, renderable view of one in-progress book.
// Records are built fresh on every fetch cycle and never persisted.
type ProgressRecord struct {
	ID          string
	Title       string
	Author      string
	Cover       []byte
	Progress    float64 // [0,1]
	TotalPages  int     // 0 = unknown
	CurrentPage int
	BookID      int
	UserBookID  int
	EditionID   int
	// BookTitle is the canonical title, not edition-specific.
	BookTitle string
}

// Edition is one published version of a book.
type Edition struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	ISBN10      string     `json:"isbn_10"`
	ISBN13      string     `json:"isbn_13"`
	Pages       int        `json:"pages"`
	Publisher   *Publisher `json:"publisher"`
	Image       *Image     `json:"image"`
	ReleaseDate string     `json:"release_date"` // ISO date, no time
}

// Publisher names an edition's publisher.
type Publisher struct {
	Name string `json:"name"`
}

// Image holds a remote image URL.
type Image struct {
	URL string `json:"url"`
}

// Book is the edition-independent entity.
type Book struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Contributions []Contribution `json:"contributions"`
	Image         *Image         `json:"image"`
	Editions      []Edition      `json:"editions"`
}

// Contribution links a book to a contributor; the first contribution's
// author is used as the display author.
type Contribution struct {
	Author *Author `json:"author"`
}

// Author names a contributor.
type Author struct {
	Name string `json:"name"`
}

// UserBook joins the user, a book, a reading status, and an optionally
// pinned edition.
type UserBook struct {
	ID        int            `json:"id"`
	BookID    int            `json:"book_id"`
	StatusID  int            `json:"status_id"`
	EditionID int            `json:"edition_id"`
	PrivacyID int            `json:"privacy_setting_id"`
	Rating    float64        `json:"rating"`
	Reads     []UserBookRead `json:"user_book_reads"`
	Book      *Book          `json:"book"`
	Edition   *Edition       `json:"edition"`
}

// UserBookRead is one reading-log row. "Latest" always means maximum id,
// not maximum date: ids are monotonic and dates may be absent.
type UserBookRead struct {
	ID            int    `json:"id"`
	StartedAt     string `json:"started_at"`
	FinishedAt    string `json:"finished_at"`
	ProgressPages *int   `json:"progress_pages"`
	EditionID     int    `json:"edition_id"`
}

// Goal is a reading goal snapshot extracted from a goal-activity event.
type Goal struct {
	ID              int
	Goal            int
	Metric          string // "book" or "page", case-insensitive
	StartDate       string
	EndDate         string
	Progress        int
	PercentComplete float64 // [0,1]
	Description     string
	Conditions      map[string]string
	PrivacyID       int
}

// UpcomingRelease is a future edition release selected from the user's
// want-to-read list. Computed fresh on every call.
type UpcomingRelease struct {
	EditionID   int
	BookID      int
	Title       string
	Author      string
	ReleaseDate time.Time
	Cover       []byte

	// coverSource is the URL resolved during selection; the image itself
	// is only fetched for entries that survive the global sort and cut.
	coverSource string
}

// FinishedEntry is one row of the reading history.
type FinishedEntry struct {
	ReadID     int
	BookID     int
	UserBookID int
	Title      string
	Author     string
	Rating     float64
	FinishedAt time.Time
	Cover      []byte
}

// ReadingStats summarizes finished books.
type ReadingStats struct {
	FromDate      string
	ToDate        string
	BooksFinished int
	Pages         int
	AverageRating float64 // 0 when no rated books
}

// SearchBook is a hydrated search result.
type SearchBook struct {
	ID            int            `json:"id"`
	Title         string         `json:"title"`
	Contributions []Contribution `json:"contributions"`
	Image         *Image         `json:"image"`
}

// Entity is a selectable id/title pair served to the host's configuration
// layer through the snapshot cache.
type Entity struct {
	ID    string
	Title string
}

// Reading statuses used by the Hardcover API.
const (
	StatusWantToRead       = 1
	StatusCurrentlyReading = 2
	StatusFinished         = 3
)
