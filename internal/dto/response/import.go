package response

// RowError reports a single rejected row from a bulk import file.
// Row numbers are 1-based and include the header row.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResponse struct {
	TotalRows    int        `json:"total_rows"`
	ImportedRows int        `json:"imported_rows"`
	SkippedRows  int        `json:"skipped_rows"`
	Errors       []RowError `json:"errors,omitempty"`
}
