package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMinioMirror_RejectsURLEndpoint(t *testing.T) {
	_, err := NewMinioMirror(context.Background(), "http://minio:9000/bucket", "", "saves", "k", "s", false)
	assert.Error(t, err)
}
