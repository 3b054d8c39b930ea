// Command tubesort solves, renders, scans and verifies liquid sort puzzles.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
