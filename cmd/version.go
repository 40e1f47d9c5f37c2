package cmd

import "fmt"

// SetVersion sets the version information for the application
func SetVersion(version, buildTime string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("clapper %s (built %s)\n", version, buildTime))
}
