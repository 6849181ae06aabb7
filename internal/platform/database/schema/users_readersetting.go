package schema

// UserReaderSettingTable represents the 'users.readersetting' table
type UserReaderSettingTable struct {
	Table        string
	UserID       string
	Theme        string
	FontSize     string
	LineHeight   string
	FontFamily   string
	ContentWidth string
	ReaderTheme  string
	UpdatedAt    string
}

// UserReaderSetting is the schema definition for users.readersetting
var UserReaderSetting = UserReaderSettingTable{
	Table:        "users.readersetting",
	UserID:       "userid",
	Theme:        "theme",
	FontSize:     "fontsize",
	LineHeight:   "lineheight",
	FontFamily:   "fontfamily",
	ContentWidth: "contentwidth",
	ReaderTheme:  "readertheme",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserReaderSettingTable) Columns() []string {
	return []string{t.UserID, t.Theme, t.FontSize, t.LineHeight, t.FontFamily, t.ContentWidth, t.ReaderTheme, t.UpdatedAt}
}
