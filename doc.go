// Package knockout renders "knockout text" pill badges into SVG containers.
//
// # Overview
//
// A badge is a rounded rectangle sized to fit a line of text, with the text
// punched out of it through a luminance mask so whatever sits behind the
// badge shows through the glyph shapes. Each container declares its badge
// with data attributes:
//
//	<svg class="tag-fill-svg-h1" data-text="HELLO" data-color="#ff3366"></svg>
//
// After a build the container holds exactly two children: a <defs> block
// with the mask and the visible pill <rect>. Its viewBox, width and height
// are set to the pill size.
//
// # Quick Start
//
//	doc, _ := dom.Parse(r)
//	m := measure.NewMeasurer(measure.DefaultFontSet())
//	rn := knockout.NewRenderer(knockout.WithMeasurer(m))
//	rn.RebuildAll(dom.AsContainers(doc.Containers()))
//	_ = doc.Render(w)
//
// # Architecture
//
// The package is organized into:
//   - Core: [ReadConfig], [EffectiveFontSize] and [Build], a pure function
//     from config, rendered height and text metrics to a [Fragment]
//   - [Renderer]: the adapter that reads a live [Container], builds, and
//     applies the result, logging each container's config once
//   - measure: text metrics from OpenType fonts (gg text faces)
//   - dom: HTML/SVG documents, stylesheets and computed heights
//   - preview: raster rendering of a fragment to PNG
//   - schedule: ready, fonts-ready, resize and mutation triggers
//
// # Sizing
//
// The badge tracks the container's rendered height rather than the
// configured font size. The effective font size is
//
//	fs = fontSize / (fontSize + ypad) * renderedHeight
//
// so a stylesheet can resize a badge by changing only its height.
package knockout
