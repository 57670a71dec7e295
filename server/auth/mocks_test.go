package auth

// mockKeyReader implements the io.Reader interface for token key generation.
type mockKeyReader struct {
	ReadFunc func(p []byte) (int, error)
}

func (r mockKeyReader) Read(p []byte) (int, error) {
	return r.ReadFunc(p)
}
