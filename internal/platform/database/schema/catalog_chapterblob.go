package schema

// CatalogChapterBlobTable represents the 'catalog.chapterblob' table
type CatalogChapterBlobTable struct {
	Table     string
	Path      string
	Body      string
	SizeBytes string
	UpdatedAt string
}

// CatalogChapterBlob is the schema definition for catalog.chapterblob
var CatalogChapterBlob = CatalogChapterBlobTable{
	Table:     "catalog.chapterblob",
	Path:      "path",
	Body:      "body",
	SizeBytes: "sizebytes",
	UpdatedAt: "updatedat",
}
