// Command liquidar calcula la liquidación mensual de IVA o ISR a partir de un
// archivo JSON, sin base de datos.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
