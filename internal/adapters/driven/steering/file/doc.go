// Package file implements driven.SteeringSource over a TOML steer file.
//
// Open writes the registered parameters to the file:
//
//	app = "pvs"
//	stop = false
//
//	[parameters]
//	"Iso 0 value" = 0.25
//	"Molecule visible?" = 1
//
// A client steers by editing the file. Poll rereads it only after fsnotify
// reports a write, and reports every value that differs from the last one
// seen. Setting stop = true asks the viewer to exit.
package file
