/*
Package flowicon renders the FlowSense application icon procedurally: a radial gradient disc,
angularly gapped ring bands, a central glyph with a soft glow beneath it, and the family
of smaller renditions derived from the master canvas by resampling.

The package provides a command line interface which writes the icon family into a directory.
To check the supported flags type:

	$ flowicon --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"github.com/esimov/flowicon"
	)

	func main() {
		g, err := flowicon.NewGenerator(flowicon.DefaultConfig(), sink)
		if err != nil {
			fmt.Printf("Invalid configuration: %s", err.Error())
		}
		family, err := g.Generate(flowicon.DefaultMasterSize)
		if err != nil {
			fmt.Printf("Error generating the icon: %s", err.Error())
		}
		if family.Fallback != nil {
			fmt.Printf("No raster support, saved %s instead", family.Fallback.Name)
		}
	}

When the raster backend reports ErrCapabilityUnavailable, the generator hands a fixed SVG
to the sink and returns without error.
*/
package flowicon
