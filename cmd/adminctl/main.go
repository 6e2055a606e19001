// adminctl is a terminal client for the admin API. It logs in with the
// flags' credentials, renders user and product tables, and drives the same
// bulk operations the dashboard exposes.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
