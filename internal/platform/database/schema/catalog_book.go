package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table              string
	ID                 string
	OwnerID            string
	Slug               string
	Title              string
	Description        string
	AuthorName         string
	CoverImageURL      string
	IsPublished        string
	PublicChapterCount string
	CreatedAt          string
	UpdatedAt          string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:              "catalog.book",
	ID:                 "id",
	OwnerID:            "ownerid",
	Slug:               "slug",
	Title:              "title",
	Description:        "description",
	AuthorName:         "authorname",
	CoverImageURL:      "coverimageurl",
	IsPublished:        "ispublished",
	PublicChapterCount: "publicchaptercount",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

// Columns returns all standard column names
func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Slug, t.Title, t.Description, t.AuthorName, t.CoverImageURL,
		t.IsPublished, t.PublicChapterCount, t.CreatedAt, t.UpdatedAt,
	}
}
