package transact

import "io"

// readAll drains and closes the body, swallowing read errors: a truncated
// body is indistinguishable from an empty one for classification purposes.
func readAll(in io.ReadCloser) []byte {
	body, err := io.ReadAll(in)
	_ = in.Close()
	if err != nil {
		return nil
	}

	return body
}
