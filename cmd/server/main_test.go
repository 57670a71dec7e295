package main

import (
	"context"
	"io"
	"log"
	"net"
	"testing"
	"time"

	"github.com/zlitery/wordgrid/server"
)

func testLog() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// TestRunServerStopsOnListenError occupies a port and runs the server on it
// so runServer observes the listen failure and returns after stopping.
func TestRunServerStopsOnListenError(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("unwanted error reserving a port: %v", err)
	}
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port
	cfg := server.Config{
		HTTPSPort:     port,
		StopDur:       time.Second,
		NoTLSRedirect: true,
	}
	s, err := cfg.NewServer(testLog(), testServerHandlers())
	if err != nil {
		t.Fatalf("unwanted error creating server: %v", err)
	}
	done := make(chan error, 1)
	go func() {
		done <- runServer(context.Background(), s, testLog())
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unwanted error running server: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Error("wanted runServer to return after the https server failed to listen")
	}
}
