package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./goalboard.db"

	// DefaultMetadataBaseURL is the default metadata provider endpoint
	DefaultMetadataBaseURL = "https://api.tvmaze.com"

	// DefaultMinConfidence is the classification score gate for enrichment.
	// Below this value classification noise produced more false enrichments
	// than true positives on real boards.
	DefaultMinConfidence = 25
)
