package constants

import "os"

func GetServeAddr() string {
	addr := os.Getenv("TAB_SERVE_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// GetMetaEndpoint returns the DynamoDB endpoint override for metadata
// lookups, empty for the default AWS endpoint.
func GetMetaEndpoint() string {
	return os.Getenv("TAB_META_ENDPOINT")
}

// GetMetaTable returns the metadata table name. Empty disables metadata
// lookups entirely.
func GetMetaTable() string {
	return os.Getenv("TAB_META_TABLE")
}

const DefaultTempoBPM = 120.0
