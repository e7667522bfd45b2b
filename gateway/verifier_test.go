package gateway

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoServer(t *testing.T, response string, status int) (*httptest.Server, *string) {
	t.Helper()
	var received string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = string(body)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		w.WriteHeader(status)
		io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestVerifyAuthorised(t *testing.T) {
	srv, received := echoServer(t, "AUTHORISED", http.StatusOK)
	v := &Verifier{Client: srv.Client(), URL: srv.URL}

	raw := "custom=G1&transaction_id=TX1&status=test"
	msg, ok := v.Verify(raw)

	require.True(t, ok)
	// The exact raw bytes must be echoed back, not a re-encoding.
	assert.Equal(t, raw, *received)
	assert.Equal(t, "G1", msg.Get("custom"))
	assert.Equal(t, "TX1", msg.Get("transaction_id"))
}

func TestVerifyAuthorisedCaseInsensitive(t *testing.T) {
	for _, response := range []string{"authorised", "Authorised"} {
		srv, _ := echoServer(t, response, http.StatusOK)
		v := &Verifier{Client: srv.Client(), URL: srv.URL}

		_, ok := v.Verify("custom=G1")
		assert.True(t, ok, "response %q should verify", response)
	}
}

func TestVerifyURLEncodedVerdict(t *testing.T) {
	srv, _ := echoServer(t, "AUTHORIS%45D", http.StatusOK)
	v := &Verifier{Client: srv.Client(), URL: srv.URL}

	_, ok := v.Verify("custom=G1")
	assert.True(t, ok)
}

func TestVerifyRejectsOtherVerdicts(t *testing.T) {
	for _, response := range []string{"DECLINED", "AUTHORISED TODAY", "error", "AUTHORISED\n", " AUTHORISED"} {
		srv, _ := echoServer(t, response, http.StatusOK)
		v := &Verifier{Client: srv.Client(), URL: srv.URL}

		_, ok := v.Verify("custom=G1")
		assert.False(t, ok, "response %q should not verify", response)
	}
}

func TestVerifyRejectsEmptyBody(t *testing.T) {
	srv, _ := echoServer(t, "", http.StatusOK)
	v := &Verifier{Client: srv.Client(), URL: srv.URL}

	_, ok := v.Verify("custom=G1")
	assert.False(t, ok)
}

func TestVerifyRejectsNon2xx(t *testing.T) {
	srv, _ := echoServer(t, "AUTHORISED", http.StatusInternalServerError)
	v := &Verifier{Client: srv.Client(), URL: srv.URL}

	_, ok := v.Verify("custom=G1")
	assert.False(t, ok)
}

func TestVerifyRejectsOnTransportError(t *testing.T) {
	srv, _ := echoServer(t, "AUTHORISED", http.StatusOK)
	srv.Close()
	v := &Verifier{Client: &http.Client{}, URL: srv.URL}

	_, ok := v.Verify("custom=G1")
	assert.False(t, ok)
}

func TestVerifyRejectsOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		io.WriteString(w, "AUTHORISED")
	}))
	t.Cleanup(srv.Close)

	v := &Verifier{Client: &http.Client{Timeout: 50 * time.Millisecond}, URL: srv.URL}
	_, ok := v.Verify("custom=G1")
	assert.False(t, ok)
}
