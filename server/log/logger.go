// Package log defines the logging interface the server's components share.
package log

// Logger is the subset of the standard library's log.Logger the server
// depends on.  Components take it as a dependency so tests can capture or
// discard their output.
type Logger interface {
	// Printf formats the values in the manner of fmt.Printf and writes them to the log.
	Printf(format string, v ...interface{})
}
