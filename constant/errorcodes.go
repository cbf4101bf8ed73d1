package constant

// Certificate service error codes
const (
	// Certificate service - Validation errors (1xx)
	ErrCodeInvalidRecord    = "CRT101"
	ErrCodeInvalidBaseURL   = "CRT102"
	ErrCodeCapacityExceeded = "CRT103"

	// Certificate service - Output errors (2xx)
	ErrCodeOutputDir = "CRT201"
	ErrCodeWriteHTML = "CRT202"
	ErrCodeWriteQR   = "CRT203"

	// Certificate service - Registry errors (3xx)
	ErrCodeRegistrySave   = "CRT301"
	ErrCodeRegistryLookup = "CRT302"
	ErrCodeNotFound       = "CRT304"
)

// QR code error codes
const (
	ErrCodeQREncode = "QR001"
	ErrCodeQRWrite  = "QR002"
)

// Database error codes
const (
	// General DB errors (5xx)
	ErrCodeDBGeneral = "DB500"

	// Connection errors (0xx)
	ErrCodeDBOpen    = "DB001"
	ErrCodeDBMigrate = "DB002"

	// Save operation errors (1xx)
	ErrCodeDBUpsert = "DB101"

	// Lookup operation errors (2xx)
	ErrCodeDBLookup = "DB201"
	ErrCodeDBList   = "DB202"

	// Close operation errors (4xx)
	ErrCodeDBClose = "DB401"
)

// Error types for categorization
const (
	// Domain error types
	ErrTypeValidation = "validation"
	ErrTypeOutput     = "output"
	ErrTypeEncoding   = "encoding"
	ErrTypeRegistry   = "registry"
	ErrTypeRetrieval  = "retrieval"

	// Infrastructure error types
	ErrTypeDB = "db"
)
