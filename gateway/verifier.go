package gateway

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// PaymentURL is the Nochex hosted payment page.
	PaymentURL = "https://secure.nochex.com/"

	// apcEchoURL is the endpoint a received callback is echoed back to
	// for confirmation.
	apcEchoURL = "https://www.nochex.com/nochex.dll/apc/apc"

	// authorisedToken is the verdict Nochex returns for a genuine callback.
	authorisedToken = "AUTHORISED"

	// echoTimeout bounds the verification round-trip. A timed-out
	// round-trip is unverified, never retried; retries are the
	// gateway's job.
	echoTimeout = 10 * time.Second
)

// Verifier confirms an APC callback by re-posting its raw body to the
// Nochex echo endpoint and checking for the AUTHORISED verdict.
type Verifier struct {
	Client *http.Client
	URL    string
}

// NewVerifier returns a Verifier against the production echo endpoint.
func NewVerifier() *Verifier {
	return &Verifier{
		Client: &http.Client{Timeout: echoTimeout},
		URL:    apcEchoURL,
	}
}

// Verify re-posts the exact raw callback bytes and returns the decoded
// payload together with true only when the URL-decoded response body is
// AUTHORISED (case-insensitive). Transport failures, non-2xx responses
// and empty or unexpected bodies are all reported identically as
// unverified, so an ambiguous round-trip can never settle an order.
func (v *Verifier) Verify(raw string) (Message, bool) {
	req, err := http.NewRequest(http.MethodPost, v.URL, strings.NewReader(raw))
	if err != nil {
		return Message{}, false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.Client.Do(req)
	if err != nil {
		return Message{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Message{}, false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return Message{}, false
	}

	verdict, err := url.QueryUnescape(string(body))
	if err != nil {
		return Message{}, false
	}
	if !strings.EqualFold(verdict, authorisedToken) {
		return Message{}, false
	}

	return DecodeMessage(raw), true
}
