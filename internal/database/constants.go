package database

// Connection pool defaults
const (
	DefaultMinConnections = 2
)

// Error message constants
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log message constants
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to database"
)
