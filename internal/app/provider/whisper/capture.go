package whisper

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"
)

// The API client decodes provider bodies into a fixed struct. To forward the
// body unchanged, the transport tees it into a buffer carried by the request
// context, one buffer per call.

type captureKey struct{}

type captureBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (c *captureBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *captureBuffer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Len()
}

func (c *captureBuffer) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.buf.Bytes()...)
}

func withCapture(ctx context.Context, buf *captureBuffer) context.Context {
	return context.WithValue(ctx, captureKey{}, buf)
}

type captureTransport struct {
	base http.RoundTripper
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil || resp == nil || resp.Body == nil {
		return resp, err
	}
	buf, ok := req.Context().Value(captureKey{}).(*captureBuffer)
	if !ok || buf == nil || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp, nil
	}
	resp.Body = &teeBody{Reader: io.TeeReader(resp.Body, buf), Closer: resp.Body}
	return resp, nil
}

type teeBody struct {
	io.Reader
	io.Closer
}

// newCapturingClient copies base (or a zero client) and wraps its transport.
func newCapturingClient(base *http.Client) *http.Client {
	client := &http.Client{}
	if base != nil {
		*client = *base
	}
	rt := client.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	client.Transport = &captureTransport{base: rt}
	return client
}
