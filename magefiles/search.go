//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Fetch builds the CLI and runs it for query, printing results to stdout.
// Usage: mage fetch "crispr cancer"
func Fetch(query string) error {
	mg.Deps(Build)
	return sh.RunV("./"+binDir+"/"+binName, query)
}

// FetchCSV builds the CLI and saves results for query to file.
func FetchCSV(query, file string) error {
	mg.Deps(Build)
	return sh.RunV("./"+binDir+"/"+binName, "--file", file, query)
}
