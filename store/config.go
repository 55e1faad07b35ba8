package store

const (
	defaultTableName     = "companies"
	defaultLocationIndex = "LocationIndex"
	defaultScanLimit     = 200
	maxScanLimit         = 1000
)

// Config holds configuration for the Store.
type Config struct {
	// TableName is the DynamoDB table holding company records.
	// Default: "companies"
	TableName string

	// LocationIndex is the name of the global secondary index whose
	// hash key is the "location" attribute.
	// Default: "LocationIndex"
	LocationIndex string

	// ScanLimit caps the number of items an unfiltered Scan returns.
	// Default: 200
	// Max: 1000
	ScanLimit int32
}

// DefaultConfig returns the standard table layout.
func DefaultConfig() Config {
	return Config{
		TableName:     defaultTableName,
		LocationIndex: defaultLocationIndex,
		ScanLimit:     defaultScanLimit,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.TableName == "" {
		c.TableName = defaultTableName
	}
	if c.LocationIndex == "" {
		c.LocationIndex = defaultLocationIndex
	}
	if c.ScanLimit < 1 {
		c.ScanLimit = defaultScanLimit
	}
	if c.ScanLimit > maxScanLimit {
		c.ScanLimit = maxScanLimit
	}
}
