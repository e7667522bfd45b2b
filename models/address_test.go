package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddressFullName(t *testing.T) {
	assert.Equal(t, "Ada Byron", Address{FirstName: "Ada", LastName: "Byron"}.FullName())
	assert.Equal(t, "Ada", Address{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Byron", Address{LastName: "Byron"}.FullName())
	assert.Equal(t, "", Address{}.FullName())
}

func TestAddressLines(t *testing.T) {
	assert.Equal(t, "1 High Street", Address{Line1: "1 High Street"}.Lines())
	assert.Equal(t, "1 High Street, Flat 2", Address{Line1: "1 High Street", Line2: "Flat 2"}.Lines())
	assert.Equal(t, "1 High Street", Address{Line1: "1 High Street", Line2: "  "}.Lines())
}
