// Command cmsctl seeds the database and publishes staged content edits.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
