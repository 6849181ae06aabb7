package schema

// LibraryReadingProgressTable represents the 'library.readingprogress' table
type LibraryReadingProgressTable struct {
	Table        string
	UserID       string
	BookID       string
	ChapterSlug  string
	ScrollOffset string
	UpdatedAt    string
}

// LibraryReadingProgress is the schema definition for library.readingprogress
var LibraryReadingProgress = LibraryReadingProgressTable{
	Table:        "library.readingprogress",
	UserID:       "userid",
	BookID:       "bookid",
	ChapterSlug:  "chapterslug",
	ScrollOffset: "scrolloffset",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t LibraryReadingProgressTable) Columns() []string {
	return []string{t.UserID, t.BookID, t.ChapterSlug, t.ScrollOffset, t.UpdatedAt}
}
