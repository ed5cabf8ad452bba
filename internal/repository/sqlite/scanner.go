package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanEntry scans a single kv entry from a database row
func ScanEntry(scanner Scanner) (*Entry, error) {
	entry := &Entry{}
	var updatedAt string

	err := scanner.Scan(&entry.Key, &entry.Value, &updatedAt)
	if err != nil {
		return nil, err
	}

	if updatedAt != "" {
		t, err := ParseTimeFromDB(updatedAt)
		if err != nil {
			return nil, err
		}
		entry.UpdatedAt = t
	}

	return entry, nil
}
