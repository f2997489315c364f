// Command fridgechef-cli runs the nutrition estimator and video ranker locally
// without starting the HTTP server.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
