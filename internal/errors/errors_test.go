package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := UnsupportedFormat("data.txt", "txt")
	wrapped := Wrap(base, "ingestion failed")

	assert.Equal(t, CodeUnsupportedFormat, GetCode(wrapped))
	assert.Contains(t, wrapped.Error(), "ingestion failed")
	assert.Contains(t, wrapped.Error(), "data.txt")
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	wrapped := Wrap(fmt.Errorf("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestHasCode_WalksStdlibWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", WriteFailure("/nope/report.pdf", fmt.Errorf("permission denied")))

	assert.True(t, HasCode(err, CodeWriteFailure))
	assert.False(t, HasCode(err, CodeParseFailure))
	assert.Equal(t, CodeWriteFailure, GetCode(err))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeParseFailure, fmt.Errorf("bad row"))
	assert.Equal(t, CodeParseFailure, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}
