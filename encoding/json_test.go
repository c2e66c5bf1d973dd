package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToJson(t *testing.T) {
	assert.Equal(t, `{"a":1}`, ToJson(map[string]int{"a": 1}))
	assert.Equal(t, "", ToJson(make(chan int)))

	var v struct {
		A int `json:"a"`
	}
	require.NoError(t, Unmarshal([]byte(`{"a":2}`), &v))
	assert.Equal(t, 2, v.A)
}
