package models

// WriteResult is the storage-neutral acknowledgement returned by mutating endpoints.
type WriteResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"inserted_id,omitempty"`
	UpsertedID   string `json:"upserted_id,omitempty"`
	Matched      int64  `json:"matched"`
	Modified     int64  `json:"modified"`
	Deleted      int64  `json:"deleted"`
}

// PublicStats are approximate collection sizes shown on the landing page.
type PublicStats struct {
	Users       int64 `json:"users"`
	Enrollments int64 `json:"enrollments"`
	Classes     int64 `json:"classes"`
}
