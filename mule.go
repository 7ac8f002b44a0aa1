// Package mule downloads files over HTTP and HTTPS, resuming interrupted
// transfers from the bytes already on disk. The destination file is the only
// persistent state: the next ranged request always starts at the current
// on-disk size, so a killed process picks up exactly where it stopped.
package mule

// Version of the mule library and command.
const Version = "0.3.1"
