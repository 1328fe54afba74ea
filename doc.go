/*
Package iconforge is an icon bundle rendering and export engine. It takes a
vector or raster glyph, recolors it, composes it with other layers over a
solid or gradient background and exports a preset-defined set of correctly
named, correctly sized files packed into a single archive.

The package provides a command line interface for rendering single icons or
whole preset bundles. To check the supported commands type:

	$ iconforge --help

In case you wish to integrate the API in a self constructed environment here
is a simple example:

	package main

	import (
		"fmt"

		"github.com/iconforge/iconforge"
	)

	func main() {
		r := iconforge.NewRenderer(iconforge.NewMemoryCatalog())

		req := iconforge.RenderRequest{
			IconID:     "search",
			IconColor:  "#ffffff",
			Background: iconforge.Solid("#063940"),
			IconSize:   64,
			OutputSize: 320,
		}

		buf, err := r.Render(req, iconforge.FormatPNG, 0)
		if err != nil {
			fmt.Printf("Error rendering icon: %s", err.Error())
		}
		_ = buf
	}
*/
package iconforge
