package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/naveenspark/islendingabok/pkg/domain"
)

const (
	// DefaultBaseURL is the service root every endpoint name is appended to.
	DefaultBaseURL = "http://www.islendingabok.is/ib_app/"

	// EnvUser and EnvPassword are read when New is given empty credentials.
	EnvUser     = "ISL_USER"
	EnvPassword = "ISL_PASSWORD"
)

// FindQuery holds the optional search terms for Find. Zero values are unset.
type FindQuery struct {
	Name       string
	BirthYear  int
	BirthMonth int
	BirthDay   int
}

// Client is the Íslendingabók API client. Its session is set once by the
// login in New and never changes afterwards.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	log        zerolog.Logger
	session    domain.Session
}

// Option configures a Client before login.
type Option func(*Client)

// WithBaseURL points the client at another service root.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug events.
func WithLogger(l zerolog.Logger) Option { //nolint:gocritic // zerolog.Logger is passed by value
	return func(c *Client) {
		c.log = l
	}
}

// New creates a client and logs in. Empty credentials fall back to the
// ISL_USER and ISL_PASSWORD environment variables.
func New(ctx context.Context, username, password string, opts ...Option) (*Client, error) {
	if username == "" {
		username = os.Getenv(EnvUser)
	}
	if password == "" {
		password = os.Getenv(EnvPassword)
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("client.New: %w", &ClientError{
			Msg: "missing credentials: provide username and password or set " + EnvUser + " and " + EnvPassword,
			Err: ErrMissingCredentials,
		})
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := c.login(ctx); err != nil {
		return nil, fmt.Errorf("client.New: %w", err)
	}
	return c, nil
}

// Session returns the state obtained at login.
func (c *Client) Session() domain.Session { return c.session }

// SessionID returns the session identifier sent with every authenticated call.
func (c *Client) SessionID() string { return c.session.ID }

// PersonID returns the logged-in user's own person identifier.
func (c *Client) PersonID() string { return c.session.PersonID }

// Close releases idle connections held by the underlying transport.
func (c *Client) Close() {
	if c.httpClient == nil {
		return
	}
	c.httpClient.CloseIdleConnections()
}

func (c *Client) login(ctx context.Context) error {
	params := url.Values{}
	params.Set("user", c.username)
	params.Set("pwd", c.password)

	resp, err := c.get(ctx, "login", params)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	parts := strings.Split(strings.TrimSpace(resp.text), ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return fmt.Errorf("login: %w", &APIError{StatusCode: resp.statusCode, Body: resp.text, Err: ErrMalformedLogin})
	}
	c.session = domain.Session{ID: parts[0], PersonID: parts[1]}
	c.log.Debug().Str("person_id", c.session.PersonID).Msg("logged in")
	return nil
}

// Me returns the logged-in user's own person record.
func (c *Client) Me(ctx context.Context) (domain.Person, error) {
	if err := c.requireSession(); err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	p, err := c.Person(ctx, c.session.PersonID)
	if err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return p, nil
}

// Person fetches a single person record. An empty id means the logged-in user.
func (c *Client) Person(ctx context.Context, id string) (domain.Person, error) {
	if id == "" {
		id = c.session.PersonID
	}
	params := url.Values{}
	params.Set("id", id)

	var p domain.Person
	if err := c.call(ctx, "get", params, &p); err != nil {
		return nil, fmt.Errorf("client.Person: %w", err)
	}
	return p, nil
}

// Find searches by name and/or date of birth.
func (c *Client) Find(ctx context.Context, q FindQuery) (domain.People, error) {
	if q.Name != "" {
		if _, err := toLatin1("name", q.Name); err != nil {
			return nil, fmt.Errorf("client.Find: %w", err)
		}
	}
	dob, err := DateOfBirth(q.Name, q.BirthYear, q.BirthMonth, q.BirthDay)
	if err != nil {
		return nil, fmt.Errorf("client.Find: %w", err)
	}

	params := url.Values{}
	params.Set("name", q.Name)
	params.Set("dob", dob)

	var people domain.People
	if err := c.call(ctx, "find", params, &people); err != nil {
		return nil, fmt.Errorf("client.Find: %w", err)
	}
	return people, nil
}

// Relation calls the relation endpoint rel for a person. An empty id means
// the logged-in user. Unknown relations fail without a request.
func (c *Client) Relation(ctx context.Context, rel Relation, id string) (domain.People, error) {
	if !rel.Valid() {
		return nil, fmt.Errorf("client.Relation: %w", &LookupError{Name: string(rel)})
	}
	if id == "" {
		id = c.session.PersonID
	}
	params := url.Values{}
	params.Set("id", id)

	var people domain.People
	if err := c.call(ctx, string(rel), params, &people); err != nil {
		return nil, fmt.Errorf("client.Relation(%s): %w", rel, err)
	}
	return people, nil
}

// RelationByName resolves name with ParseRelation and calls it.
func (c *Client) RelationByName(ctx context.Context, name, id string) (domain.People, error) {
	rel, err := ParseRelation(name)
	if err != nil {
		return nil, fmt.Errorf("client.RelationByName: %w", err)
	}
	return c.Relation(ctx, rel, id)
}

// Get returns the record for id through the relation endpoint set.
func (c *Client) Get(ctx context.Context, id string) (domain.People, error) {
	return c.Relation(ctx, RelationGet, id)
}

// Siblings returns the siblings of id.
func (c *Client) Siblings(ctx context.Context, id string) (domain.People, error) {
	return c.Relation(ctx, RelationSiblings, id)
}

// Children returns the children of id.
func (c *Client) Children(ctx context.Context, id string) (domain.People, error) {
	return c.Relation(ctx, RelationChildren, id)
}

// Mates returns the partners id has had children with.
func (c *Client) Mates(ctx context.Context, id string) (domain.People, error) {
	return c.Relation(ctx, RelationMates, id)
}

// Ancestors returns the ancestors of id.
func (c *Client) Ancestors(ctx context.Context, id string) (domain.People, error) {
	return c.Relation(ctx, RelationAncestors, id)
}

// Trace returns the lineage connecting id to the logged-in user.
func (c *Client) Trace(ctx context.Context, id string) (domain.People, error) {
	return c.Relation(ctx, RelationTrace, id)
}

// Whois reveals the display name behind another user's session id. The
// response is plain text and is returned unchanged.
func (c *Client) Whois(ctx context.Context, stranger string) (string, error) {
	if err := c.requireSession(); err != nil {
		return "", fmt.Errorf("client.Whois: %w", err)
	}
	params := url.Values{}
	params.Set("session", c.session.ID)
	params.Set("stranger", stranger)

	resp, err := c.get(ctx, "whois", params)
	if err != nil {
		return "", fmt.Errorf("client.Whois: %w", err)
	}
	return resp.text, nil
}

// Call issues an authenticated request to any endpoint and decodes the JSON
// response into out. A body that cannot be decoded into out yields an
// *APIError holding it.
func (c *Client) Call(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.call(ctx, endpoint, params, out); err != nil {
		return fmt.Errorf("client.Call(%s): %w", endpoint, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.requireSession(); err != nil {
		return err
	}
	q := make(url.Values, len(params)+1)
	for k, v := range params {
		q[k] = v
	}
	q.Set("session", c.session.ID)

	resp, err := c.get(ctx, endpoint, q)
	if err != nil {
		return err
	}
	return resp.decode(out)
}

func (c *Client) requireSession() error {
	if !c.session.Valid() {
		return &ClientError{Msg: "not logged in", Err: ErrNotLoggedIn}
	}
	return nil
}

type response struct {
	statusCode int
	text       string
}

// decode unmarshals the body into out. Any body that does not fit out,
// including JSON strings the service uses for error messages, is returned
// verbatim in an *APIError.
func (r *response) decode(out any) error {
	if !json.Valid([]byte(r.text)) {
		return &APIError{StatusCode: r.statusCode, Body: r.text}
	}
	if out == nil {
		return nil
	}
	dec := json.NewDecoder(strings.NewReader(r.text))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &APIError{StatusCode: r.statusCode, Body: r.text, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// get is the raw primitive: one GET to baseURL+endpoint with the query
// encoded in ISO-8859-1. The status code is recorded but not acted on.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*response, error) {
	query, err := encodeQuery(params)
	if err != nil {
		return nil, err
	}
	target := c.baseURL + endpoint
	if query != "" {
		target += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", redactURL(err, c.baseURL+endpoint))
	}

	reqID := uuid.NewString()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().
			Str("request_id", reqID).
			Str("endpoint", endpoint).
			Dur("duration", time.Since(start)).
			Msg("request failed")
		return nil, fmt.Errorf("do request: %w", redactURL(err, c.baseURL+endpoint))
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	c.log.Debug().
		Str("request_id", reqID).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("request")

	return &response{
		statusCode: resp.StatusCode,
		text:       decodeBody(resp.Header.Get("Content-Type"), body),
	}, nil
}

// redactURL drops the query string from transport errors; the login query
// carries the password.
func redactURL(err error, bare string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = bare
	}
	return err
}
