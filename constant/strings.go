package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain     = "domain"
	CtxIssue      = "Issue"
	CtxLookup     = "Lookup"
	CtxList       = "List"
	CtxRenderPage = "RenderPage"

	// Infrastructure context names
	CtxDB           = "db"
	CtxSave         = "Save"
	CtxFindByNumber = "FindByNumber"
	CtxClose        = "Close"
	CtxQRCode       = "qrcode"
	CtxAPI          = "api"

	// General context names
	CtxRouter          = "Router"
	CtxMain            = "Main"
	CtxIssueHandler    = "IssueCertificate"
	CtxGetCertificate  = "GetCertificate"
	CtxListHandler     = "ListCertificates"
	CtxPageHandler     = "GetCertificatePage"
	CtxQRCodeHandler   = "GetCertificateQRCode"
	CtxGenerateCommand = "generate"
	CtxBatchCommand    = "batch"
)

// Data field keys
const (
	// Service data fields
	DataService       = "service"
	DataCertificateNo = "certificate_no"
	DataURL           = "url"
	DataBaseURL       = "base_url"
	DataOutputDir     = "output_dir"
	DataHTMLPath      = "html_path"
	DataQRPath        = "qr_path"
	DataLength        = "length"
	DataCapacity      = "capacity"
	DataCount         = "count"
	DataCached        = "cached"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataPort        = "port"
	DataDBPath      = "db_path"
	DataEnvironment = "environment"
	DataFile        = "file"
	DataCommand     = "command"
)

// Error message constants
const (
	ErrEmptyCertificateNo   = "certificate number cannot be empty"
	ErrInvalidCertificateNo = "certificate number may only contain letters, digits, '.', '_' and '-' and must not contain '..'"
	ErrInvalidBaseURL       = "base URL must be an absolute URL"
	ErrCertificateNotFound  = "certificate not found"
	ErrRegistryDisabled     = "certificate registry is not configured"
	ErrContentTooLong       = "content too long to encode"
)

// Error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIQRCode         = "API003"
	ErrCodeAppDBInit         = "APP001"
	ErrCodeAppServerStart    = "APP002"
	ErrCodeAppServerShutdown = "APP003"
	ErrCodeAppIssue          = "APP004"
	ErrCodeAppConfig         = "APP005"
)

// Error types
const (
	ErrTypeDomain = "domain"
	ErrTypeAPI    = "api"
	ErrTypeApp    = "application"
)

// API routes
const (
	RouteCertificates      = "/api/certificates"
	RouteCertificate       = "/api/certificates/{certificateNo}"
	RouteCertificatePage   = "/api/certificates/{certificateNo}/page"
	RouteCertificateQRCode = "/api/certificates/{certificateNo}/qr"
	RouteStaticCerts       = "/certs"
	RouteHealthcheck       = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Output file naming
const (
	HTMLFilePrefix    = "cert_"
	HTMLFileExtension = ".html"
	QRFilePrefix      = "qr_"
	QRFileExtension   = ".png"
	DefaultOutputDir  = "certificates"
)

// Message constants for application
const (
	MsgApplicationStarting = "Application starting"
	MsgFailedToInitDB      = "Failed to initialize database"
	MsgServerStarting      = "Server starting"
	MsgServerFailedToStart = "Server failed to start"
	MsgServerShuttingDown  = "Server shutting down"
	MsgServerShutdownError = "Error during server shutdown"
	MsgServerStopped       = "Server stopped"
	MsgRequestReceived     = "Request received"
	MsgRequestCompleted    = "Request completed"
	MsgSettingUpRoutes     = "Setting up API routes"
	MsgHealthcheckRequest  = "Handling healthcheck request"
	MsgHealthy             = "Healthy"
	MsgIssueFailed         = "Failed to issue certificate"
	MsgInvalidConfig       = "Invalid configuration"
)

// Cache Namespace
const (
	PageNamespace = "PAGE"
)
