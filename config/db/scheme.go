package db

// Scheme describes database connection params
type Scheme struct {
	// Uri postgres connection string
	Uri string
}
