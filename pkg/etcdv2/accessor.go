package etcdv2

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kart-io/logger"

	"github.com/kart-io/etcdconf/pkg/utils/json"
)

const (
	// DefaultServerURL is used when no endpoint is configured.
	DefaultServerURL = "http://127.0.0.1:4001"

	// VersionError is the sentinel VersionOrError returns when the
	// version endpoint cannot be reached.
	VersionError = "<ERROR>"

	// sourcePrefix tags every source marker emitted by this accessor.
	sourcePrefix = "[etcd]"

	keysPrefix = "/v2/keys/"

	defaultRequestTimeout = 10 * time.Second
)

var (
	// ErrInvalidServerURL indicates the configured server URL could not
	// be parsed or lacks a usable scheme or host.
	ErrInvalidServerURL = errors.New("etcdv2: invalid server URL")

	// ErrStatus indicates the server answered with a non-200 status.
	ErrStatus = errors.New("etcdv2: unexpected response status")
)

// Accessor is a stateless-per-call client for etcd's v2 HTTP keys API.
// The zero value is not usable; construct instances with New. An Accessor
// is safe for concurrent use, each call is one self-contained round-trip
// over the shared pooled HTTP client.
type Accessor struct {
	serverURL string
	client    *http.Client
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithHTTPClient replaces the default HTTP client. The client must be
// safe for concurrent use.
func WithHTTPClient(c *http.Client) Option {
	return func(a *Accessor) {
		a.client = c
	}
}

// WithTimeout sets the per-request timeout on the accessor's HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(a *Accessor) {
		a.client.Timeout = d
	}
}

// New creates an Accessor for the given base server URL, e.g.
// "http://127.0.0.1:4001". One trailing slash is stripped. The URL must
// parse and carry an http or https scheme plus a host, otherwise
// ErrInvalidServerURL is returned.
func New(serverURL string, opts ...Option) (*Accessor, error) {
	serverURL = strings.TrimSuffix(serverURL, "/")
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidServerURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, serverURL)
	}

	a := &Accessor{
		serverURL: serverURL,
		client:    &http.Client{Timeout: defaultRequestTimeout},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ServerURL returns the normalized base server URL.
func (a *Accessor) ServerURL() string {
	return a.serverURL
}

// Source returns the source marker recorded in every result,
// "[etcd]" followed by the server URL.
func (a *Accessor) Source() string {
	return sourcePrefix + a.serverURL
}

// CloseIdleConnections releases pooled connections held by the accessor's
// HTTP client. In-flight calls are unaffected.
func (a *Accessor) CloseIdleConnections() {
	a.client.CloseIdleConnections()
}

// Version returns the etcd server version as reported by GET /version.
func (a *Accessor) Version(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.serverURL+"/version", nil)
	if err != nil {
		return "", fmt.Errorf("etcdv2: build version request: %w", err)
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("etcdv2: version request: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("etcdv2: read version response: %w", err)
	}
	return string(body), nil
}

// VersionOrError is the compatibility form of Version: any failure is
// collapsed into the "<ERROR>" sentinel instead of an error return.
func (a *Accessor) VersionOrError(ctx context.Context) string {
	v, err := a.Version(ctx)
	if err != nil {
		logger.Warnf("etcd version probe against %s failed: %v", a.serverURL, err)
		return VersionError
	}
	return v
}

// Get fetches a single key. On success the result holds key=value plus
// the _key.createdIndex, _key.modifiedIndex, _key.expiration and _key.ttl
// companions for whichever fields the response carried.
func (a *Accessor) Get(ctx context.Context, key string) *Result {
	res := newResult(key, a.Source())

	kr, err := a.keysRequest(ctx, http.MethodGet, a.keyURL(key), nil)
	if err != nil {
		logger.Warnf("etcd get %q failed: %v", key, err)
		return res.fail(err)
	}
	if kr.Node != nil {
		res.putNodeMeta(key, kr.Node)
		if kr.Node.Value != nil {
			res.Properties[key] = *kr.Node.Value
		}
	}
	return res
}

// Set creates or updates a key via PUT with a form-encoded body. A
// non-nil ttlSeconds adds a ttl parameter. The result holds the new
// node's value and metadata as in Get, plus _key.prevNode.* companions
// when etcd reports the previous node.
func (a *Accessor) Set(ctx context.Context, key, value string, ttlSeconds *int) *Result {
	res := newResult(key, a.Source())

	form := url.Values{}
	form.Set("value", value)
	if ttlSeconds != nil {
		form.Set("ttl", strconv.Itoa(*ttlSeconds))
	}

	kr, err := a.keysRequest(ctx, http.MethodPut, a.keyURL(key), form)
	if err != nil {
		logger.Warnf("etcd set %q failed: %v", key, err)
		return res.fail(err)
	}
	if kr.Node != nil {
		res.putNodeMeta(key, kr.Node)
		if kr.Node.Value != nil {
			res.Properties[key] = *kr.Node.Value
		}
	}
	if kr.PrevNode != nil {
		res.putPrevNodeMeta(key, kr.PrevNode)
	}
	return res
}

// Delete removes a key. The result holds the deleted node's metadata
// companions (the value is gone at this point) plus the previous node's
// metadata and value when present.
func (a *Accessor) Delete(ctx context.Context, key string) *Result {
	res := newResult(key, a.Source())

	kr, err := a.keysRequest(ctx, http.MethodDelete, a.keyURL(key), nil)
	if err != nil {
		logger.Warnf("etcd delete %q failed: %v", key, err)
		return res.fail(err)
	}
	if kr.Node != nil {
		res.putNodeMeta(key, kr.Node)
	}
	if kr.PrevNode != nil {
		res.putPrevNodeMeta(key, kr.PrevNode)
	}
	return res
}

// GetProperties lists a directory, flattening every leaf reachable under
// it into one key=value entry plus metadata companions. With recursive
// false, etcd only returns the directory's direct children.
func (a *Accessor) GetProperties(ctx context.Context, directory string, recursive bool) *Result {
	res := newResult(directory, a.Source())

	u := a.keyURL(directory) + "?recursive=" + strconv.FormatBool(recursive)
	kr, err := a.keysRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		logger.Warnf("etcd list %q failed: %v", directory, err)
		return res.fail(err)
	}
	if kr.Node != nil {
		a.flatten(res, kr.Node)
	}
	return res
}

// keysRequest performs one round-trip against the keys API and decodes
// the JSON envelope. Any non-200 status is an error; the body is drained
// and closed on every path so the connection returns to the pool.
func (a *Accessor) keysRequest(ctx context.Context, method, rawURL string, form url.Values) (*keysResponse, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("etcdv2: build request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("etcdv2: %s %s: %w", method, rawURL, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("etcdv2: read response: %w", err)
	}
	kr := &keysResponse{}
	if err := json.UnmarshalLenient(data, kr); err != nil {
		return nil, fmt.Errorf("etcdv2: decode response: %w", err)
	}
	return kr, nil
}

// keyURL joins the keys API prefix with a key. Keys are path-like, so
// embedded slashes are kept verbatim rather than escaped.
func (a *Accessor) keyURL(key string) string {
	return a.serverURL + keysPrefix + strings.TrimPrefix(key, "/")
}

// drainAndClose fully consumes and closes a response body so the
// underlying connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
