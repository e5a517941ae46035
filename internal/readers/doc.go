// Package readers provides the input file readers for the viewer. Each
// subpackage knows one file format and implements a driven reader port.
package readers
