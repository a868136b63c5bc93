// Package constants provides shared constants used throughout the token
// synchronizer: timeouts, upstream endpoints, file permissions and the
// naming conventions of the generated catalog files.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the timeout for a single upstream page request
	DefaultHTTPTimeout = 30 * time.Second

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second

	// ScryfallRateLimitDelay is the pause between two page requests
	ScryfallRateLimitDelay = 500 * time.Millisecond

	// DefaultCacheTTL is how long a cached upstream page stays valid
	DefaultCacheTTL = 1 * time.Hour
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Upstream constants
const (
	// ScryfallAPIURL is the base URL of the Scryfall API
	ScryfallAPIURL = "https://api.scryfall.com"

	// ScryfallSearchPath is the card search endpoint
	ScryfallSearchPath = "/cards/search"

	// DefaultUserAgent identifies the tool to Scryfall, which asks clients to send one
	DefaultUserAgent = "tokenxml/1.0"
)

// Catalog output conventions
const (
	// NewTokensFilePattern names the file holding newly synthesized entries; %s is the set code
	NewTokensFilePattern = "%s_new_tokens.xml"

	// UpdatedCatalogFilePattern names the amended catalog; %s is the set code
	UpdatedCatalogFilePattern = "token_file_%s_update.xml"

	// XMLIndent is the indentation used when writing catalog files
	XMLIndent = "    "
)
