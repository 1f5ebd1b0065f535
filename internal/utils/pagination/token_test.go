package pagination

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSequenceToken(t *testing.T) {
	token := EncodeSequenceToken(42)
	assert.NotEmpty(t, token, "Token should not be empty")

	seq, err := DecodeSequenceToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, int64(42), seq)
}

func TestDecodeSequenceTokenError(t *testing.T) {
	_, err := DecodeSequenceToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	wrongPrefix := base64.URLEncoding.EncodeToString([]byte("page|3"))
	_, err = DecodeSequenceToken(wrongPrefix)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "split")

	notNumber := base64.URLEncoding.EncodeToString([]byte("seq|abc"))
	_, err = DecodeSequenceToken(notNumber)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sequence parse")

	zero := base64.URLEncoding.EncodeToString([]byte("seq|0"))
	_, err = DecodeSequenceToken(zero)
	assert.Error(t, err)
}

func TestMultiFieldToken(t *testing.T) {
	token := EncodeMultiFieldToken("a", "b", "c")
	parts, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, parts)
}
