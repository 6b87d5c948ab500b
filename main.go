// Command bindery runs the customer editor and its demos.
package main

import (
	"os"

	"github.com/guilhermegouw/bindery/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
