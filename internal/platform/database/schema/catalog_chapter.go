package schema

// CatalogChapterTable represents the 'catalog.chapter' table
type CatalogChapterTable struct {
	Table       string
	ID          string
	BookID      string
	Slug        string
	Title       string
	OrderIndex  string
	ContentPath string
	WordCount   string
	CreatedAt   string
	UpdatedAt   string

	// Unique constraint names, used to tell slug and order collisions apart
	UniqueOrder string
	UniqueSlug  string
}

// CatalogChapter is the schema definition for catalog.chapter
var CatalogChapter = CatalogChapterTable{
	Table:       "catalog.chapter",
	ID:          "id",
	BookID:      "bookid",
	Slug:        "slug",
	Title:       "title",
	OrderIndex:  "orderindex",
	ContentPath: "contentpath",
	WordCount:   "wordcount",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
	UniqueOrder: "chapter_bookid_orderindex_key",
	UniqueSlug:  "chapter_bookid_slug_key",
}

// Columns returns all standard column names
func (t CatalogChapterTable) Columns() []string {
	return []string{
		t.ID, t.BookID, t.Slug, t.Title, t.OrderIndex, t.ContentPath, t.WordCount, t.CreatedAt, t.UpdatedAt,
	}
}
