package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeMessage(t *testing.T) {
	msg := DecodeMessage("custom=ORDER-GUID-1&transaction_id=TX100&status=test")

	assert.Equal(t, 3, msg.Len())
	assert.Equal(t, "ORDER-GUID-1", msg.Get("custom"))
	assert.Equal(t, "TX100", msg.Get("transaction_id"))
	assert.Equal(t, "test", msg.Get("status"))
	assert.True(t, msg.Has("status"))
	assert.False(t, msg.Has("amount"))
	assert.Equal(t, "", msg.Get("amount"))
}

func TestDecodeMessageUnescapes(t *testing.T) {
	msg := DecodeMessage("description=Order+Number+42&email=jo%40example.com")

	assert.Equal(t, "Order Number 42", msg.Get("description"))
	assert.Equal(t, "jo@example.com", msg.Get("email"))
}

func TestDecodeMessageLastValueWins(t *testing.T) {
	msg := DecodeMessage("status=test&status=live")

	assert.Equal(t, 1, msg.Len())
	assert.Equal(t, "live", msg.Get("status"))
}

func TestDecodeMessageToleratesMalformedInput(t *testing.T) {
	// Broken escapes and bare tokens must not lose the valid pairs.
	msg := DecodeMessage("%zz=broken&ok=1&&flagonly&=novalue")

	assert.Equal(t, "1", msg.Get("ok"))
	assert.Equal(t, "broken", msg.Get("%zz"))
	assert.True(t, msg.Has("flagonly"))
	assert.Equal(t, "", msg.Get("flagonly"))
	assert.False(t, msg.Has(""))
}

func TestDecodeMessageEmpty(t *testing.T) {
	msg := DecodeMessage("")

	assert.Equal(t, 0, msg.Len())
	assert.Equal(t, "", msg.Friendly())
}

func TestFriendlyKeepsReceivedOrder(t *testing.T) {
	msg := DecodeMessage("custom=G1&transaction_id=TX1&status=test")

	assert.Equal(t, "custom = G1\ntransaction_id = TX1\nstatus = test", msg.Friendly())
}
