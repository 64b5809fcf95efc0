package flatipc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexhholmes/flatipc"
)

func TestSignatureOf(t *testing.T) {
	a := flatipc.SignatureOf("record Point{X int16;Y int16;}")
	assert.Equal(t, a, flatipc.SignatureOf("record Point{X int16;Y int16;}"))

	for _, other := range []string{
		"record Point{Y int16;X int16;}",
		"record Point{X int16;Y int32;}",
		"record Pos{X int16;Y int16;}",
		"variant Point{X int16;Y int16;}",
		"",
	} {
		assert.NotEqual(t, a, flatipc.SignatureOf(other), other)
	}
}

func TestRoundUp(t *testing.T) {
	assert.Equal(t, 4096, flatipc.RoundUp(0))
	assert.Equal(t, 4096, flatipc.RoundUp(1))
	assert.Equal(t, 4096, flatipc.RoundUp(4096))
	assert.Equal(t, 8192, flatipc.RoundUp(4097))
}
