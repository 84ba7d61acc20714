package aws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFunctionName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "photo-api-dev-upload", FunctionName("photo-api", "dev", "upload"))
}
