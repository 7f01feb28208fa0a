package helpers

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeToUTF8(t *testing.T) {
	// Plain UTF-8 passes through untouched
	reader, err := DecodeToUTF8([]byte("<html><body>상품 19,900원</body></html>"), "text/html; charset=utf-8")
	assert.NoError(t, err)
	data, err := io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "19,900원")

	// EUC-KR bytes for "가격" are converted to UTF-8
	eucKR := []byte{0xb0, 0xa1, 0xb0, 0xdd}
	reader, err = DecodeToUTF8(eucKR, "text/html; charset=euc-kr")
	assert.NoError(t, err)
	data, err = io.ReadAll(reader)
	assert.NoError(t, err)
	assert.Equal(t, "가격", string(data))
}
