// Package preview rasterizes knockout fragments with gg.
//
// The pill is filled into one context and the text into another; the text
// layer's alpha becomes a gg.Mask, is inverted, and the pill is composited
// through it, so glyph pixels end up transparent exactly as the SVG mask
// renders them in a browser.
package preview
