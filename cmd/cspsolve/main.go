// Command cspsolve exposes the csp engine from the command line: solving
// single Sudoku or graph-coloring instances, running a configuration sweep
// and reporting aggregated statistics, and comparing inference methods head
// to head, the CLI counterpart of original_source's __main__ scripts.
package main

import (
	"log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("cspsolve: %v", err)
	}
}
