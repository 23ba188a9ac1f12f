package jsonx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func TestEncodeDecodeStream(t *testing.T) {
	var buf bytes.Buffer
	in := payload{Title: "জন্ম তথ্য", Content: "তিনি ১৯৫০ সালে জন্মগ্রহণ করেন।"}
	require.NoError(t, EncodeTo(&buf, in))
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte("\n")))

	var out payload
	require.NoError(t, DecodeFrom(&buf, &out))
	assert.Equal(t, in, out)
}

func TestDecodeFromRejectsGarbage(t *testing.T) {
	var out payload
	assert.Error(t, DecodeFrom(bytes.NewBufferString("{broken"), &out))
}
