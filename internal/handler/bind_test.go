package handler

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLimitedBoundary(t *testing.T) {
	data, err := readLimited(bytes.NewReader(bytes.Repeat([]byte("a"), maxUploadBytes)))
	require.NoError(t, err)
	assert.Len(t, data, maxUploadBytes)

	_, err = readLimited(bytes.NewReader(bytes.Repeat([]byte("a"), maxUploadBytes+1)))
	assert.Error(t, err)
}
