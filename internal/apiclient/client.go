// Package apiclient is the single outbound HTTP client for the inventory
// API. Every request passes through an ordered pipeline of request
// transforms and response observers.
package apiclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/stockdesk/stockdesk/internal/models"
	"github.com/stockdesk/stockdesk/internal/session"
)

// Client is the inventory API client.
type Client struct {
	http       *resty.Client
	holder     *session.Holder
	transforms []RequestTransform
	observers  []ResponseObserver
	progress   Progress
}

// Progress is told when a call starts and when it finishes, whatever the
// outcome. Calls may overlap.
type Progress interface {
	Start()
	Done()
}

// Option configures a Client.
type Option func(*Client)

// WithTransforms appends request transforms after the defaults.
func WithTransforms(t ...RequestTransform) Option {
	return func(c *Client) { c.transforms = append(c.transforms, t...) }
}

// WithObservers appends response observers after the defaults.
func WithObservers(o ...ResponseObserver) Option {
	return func(c *Client) { c.observers = append(c.observers, o...) }
}

// WithProgress reports every call to p.
func WithProgress(p Progress) Option {
	return func(c *Client) { c.progress = p }
}

// New creates a client for baseURL reading the session from holder.
// notifier receives the session-expired message; it may be nil.
func New(baseURL string, holder *session.Holder, notifier Notifier, opts ...Option) *Client {
	c := &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetRetryCount(0),
		holder:     holder,
		transforms: []RequestTransform{BearerToken, UserID, RequestID},
		observers:  []ResponseObserver{ExpireOnUnauthorized(holder, notifier), LogResponse},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.OnBeforeRequest(c.beforeRequest)
	c.http.OnAfterResponse(c.afterResponse)
	return c
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Call carries the per-request parts of an endpoint invocation.
type Call struct {
	PathParams map[string]string
	Query      url.Values
	Body       any
	Result     any
	File       *File
}

// File is a multipart file part.
type File struct {
	Field  string
	Name   string
	Reader io.Reader
}

type callInfoKey struct{}

// callInfo travels in the request context from Do through both hooks.
type callInfo struct {
	endpoint Endpoint
	session  *models.Session
}

// Do performs one call to ep. Transport failures wrap ErrConnectionError,
// or are ErrConnectionTimeout when ctx's deadline expired. Non-2xx
// responses are filtered through the endpoint's Policy.
func (c *Client) Do(ctx context.Context, ep Endpoint, call Call) (*resty.Response, error) {
	if c.progress != nil {
		c.progress.Start()
		defer c.progress.Done()
	}
	info := &callInfo{endpoint: ep}
	req := c.http.R().SetContext(context.WithValue(ctx, callInfoKey{}, info))

	if len(call.PathParams) > 0 {
		req.SetPathParams(call.PathParams)
	}
	if len(call.Query) > 0 {
		req.SetQueryParamsFromValues(call.Query)
	}
	if call.Body != nil {
		req.SetBody(call.Body)
	}
	if call.Result != nil {
		req.SetResult(call.Result)
	}
	if call.File != nil {
		req.SetFileReader(call.File.Field, call.File.Name, call.File.Reader)
	}

	resp, err := req.Execute(ep.Method, ep.Path)
	if err != nil {
		return resp, transportError(ctx, ep, err)
	}
	return resp, ep.check(resp)
}

func (c *Client) beforeRequest(_ *resty.Client, req *resty.Request) error {
	info, _ := req.Context().Value(callInfoKey{}).(*callInfo)
	var sess *models.Session
	if info != nil && !info.endpoint.Anonymous && c.holder != nil {
		sess = c.holder.Current()
		info.session = sess
	}
	for _, t := range c.transforms {
		if err := t(req, sess); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) afterResponse(_ *resty.Client, resp *resty.Response) error {
	var sess *models.Session
	if info, ok := resp.Request.Context().Value(callInfoKey{}).(*callInfo); ok {
		sess = info.session
	}
	for _, o := range c.observers {
		o(resp, sess)
	}
	return nil
}

func transportError(ctx context.Context, ep Endpoint, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", ep.Method, ep.Path, ErrConnectionTimeout)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%s %s: %w: %w", ep.Method, ep.Path, ErrConnectionError, err)
}
