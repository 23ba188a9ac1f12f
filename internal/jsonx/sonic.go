// Package jsonx is the project-wide JSON codec, backed by Sonic. The persisted
// knowledge blob and every HTTP body go through these helpers so the encoder
// can be swapped in one place.
package jsonx

import (
	"io"

	"github.com/bytedance/sonic"
)

// Marshal returns the JSON encoding of v.
func Marshal(v interface{}) ([]byte, error) {
	return sonic.Marshal(v)
}

// Unmarshal parses JSON-encoded data into the value pointed to by v.
func Unmarshal(data []byte, v interface{}) error {
	return sonic.Unmarshal(data, v)
}

// DecodeFrom reads all of r and unmarshals it into v. Used for HTTP request
// bodies, which are small and fully buffered anyway.
func DecodeFrom(r io.Reader, v interface{}) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return sonic.Unmarshal(data, v)
}

// EncodeTo marshals v and writes it to w followed by a newline.
func EncodeTo(w io.Writer, v interface{}) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
