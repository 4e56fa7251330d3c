package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey_Deterministic(t *testing.T) {
	a := Key("this movie was great")
	b := Key("this movie was great")
	assert.Equal(t, a, b)
}

func TestKey_DistinctTexts(t *testing.T) {
	a := Key("this movie was great")
	b := Key("this movie was terrible")
	assert.NotEqual(t, a, b)
}

func TestKey_Prefix(t *testing.T) {
	assert.True(t, strings.HasPrefix(Key("anything"), PREDICTION_KEY_PREFIX))
}
