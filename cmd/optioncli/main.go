// Command optioncli is a thin demonstrator over the pricing and Greeks
// packages: it wires its price and greeks subcommands to the library and
// prints their results, rather than reimplementing any of the engine's
// logic at the command layer.
package main

import "github.com/johnayoung/go-optionlab/cmd/optioncli/cmd"

func main() {
	cmd.Execute()
}
