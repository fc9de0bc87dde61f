package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// GraphQL surface is read-only, no auth; every /api route requires it
	return []string{"/graphql"}
}
