package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public registry API.
const DefaultBaseURL = "https://api.company-information.service.gov.uk"

// PageSize is the items_per_page requested from paginated list endpoints.
const PageSize = 100

// Observer is notified after every registry request. statusCode is 0 when the
// request failed before a response was received.
type Observer interface {
	ObserveRequest(op string, statusCode int, elapsed time.Duration)
}

// Options configures a Client.
type Options struct {
	BaseURL string
	APIKey  string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration
	// PageSize overrides PageSize for paginated endpoints; <=0 uses PageSize.
	PageSize int

	HTTPClient *http.Client
	Observer   Observer
	Logger     *zerolog.Logger
}

// Client issues authenticated lookups against the registry API.
//
// Requests are sequential and never retried.
type Client struct {
	baseURL  *url.URL
	apiKey   string
	pageSize int
	http     *http.Client
	observer Observer
	log      zerolog.Logger
}

// NewClient constructs a client for the registry base URL.
func NewClient(opts Options) (*Client, error) {
	raw := strings.TrimSpace(opts.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := parseBaseURL(raw)
	if err != nil {
		return nil, err
	}
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("registry api key is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
			Timeout:   opts.Timeout,
		}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = PageSize
	}
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = opts.Logger.With().Str("component", "registry").Logger()
	}

	return &Client{
		baseURL:  base,
		apiKey:   apiKey,
		pageSize: pageSize,
		http:     hc,
		observer: opts.Observer,
		log:      log,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse registry base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("registry base URL must include a host (got %q)", raw)
	}
	// Ensure the base path ends with a slash so ResolveReference treats it as a directory.
	u.Path = strings.TrimRight(u.Path, "/") + "/"
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// SearchOfficers returns the officer search hits for name in API order.
func (c *Client) SearchOfficers(ctx context.Context, name string) ([]OfficerSearchHit, error) {
	q := url.Values{}
	q.Set("q", name)

	var out itemsResponse[officerSearchItem]
	if err := c.getJSON(ctx, "searchOfficers", c.resolve("search", "officers"), q, &out); err != nil {
		return nil, err
	}
	hits := make([]OfficerSearchHit, 0, len(out.Items))
	for _, it := range out.Items {
		hits = append(hits, OfficerSearchHit{
			OfficerID: OfficerIDFromLink(it.Links.Self),
			Title:     it.Title,
			SelfLink:  it.Links.Self,
		})
	}
	return hits, nil
}

// SearchCompanies returns the company search hits for name in API order.
func (c *Client) SearchCompanies(ctx context.Context, name string) ([]CompanyHit, error) {
	q := url.Values{}
	q.Set("q", name)

	var out itemsResponse[companySearchItem]
	if err := c.getJSON(ctx, "searchCompanies", c.resolve("search", "companies"), q, &out); err != nil {
		return nil, err
	}
	hits := make([]CompanyHit, 0, len(out.Items))
	for _, it := range out.Items {
		hits = append(hits, CompanyHit{
			CompanyNumber: it.CompanyNumber,
			Title:         it.Title,
		})
	}
	return hits, nil
}

// OfficerAppointments returns every appointment listed for the officer. The endpoint
// is not paginated.
func (c *Client) OfficerAppointments(ctx context.Context, officerID string) ([]Appointment, error) {
	officerID = strings.TrimSpace(officerID)
	if officerID == "" {
		return nil, fmt.Errorf("officer id is required")
	}

	var out itemsResponse[appointmentItem]
	u := c.resolve("officers", officerID, "appointments")
	if err := c.getJSON(ctx, "officerAppointments", u, nil, &out); err != nil {
		return nil, err
	}
	appts := make([]Appointment, 0, len(out.Items))
	for _, it := range out.Items {
		appts = append(appts, Appointment{
			CompanyNumber: it.AppointedTo.CompanyNumber,
			CompanyName:   it.AppointedTo.CompanyName,
			OfficerRole:   it.OfficerRole,
			AppointedOn:   it.AppointedOn,
			ResignedOn:    it.ResignedOn,
		})
	}
	return appts, nil
}

// CompanyDetail fetches the company profile. Any failure (transport, a status other than
// 200, malformed body) is reported as a Missing result rather than an error.
func (c *Client) CompanyDetail(ctx context.Context, companyNumber string) DetailResult {
	companyNumber = strings.TrimSpace(companyNumber)
	if companyNumber == "" {
		return Missing(fmt.Errorf("company number is required"))
	}

	var out companyProfile
	if err := c.fetchJSON(ctx, "companyDetail", c.resolve("company", companyNumber), nil, &out, statusOK); err != nil {
		return Missing(err)
	}
	return Found(CompanyDetail{
		CompanyName:       out.CompanyName,
		CompanyStatus:     out.CompanyStatus,
		CompanyType:       out.Type,
		IncorporationDate: out.DateOfCreation,
		RegisteredAddress: FormatAddress(out.RegisteredOfficeAddress),
	})
}

// CompanyOfficers returns the company's full officer list, active and resigned.
//
// Pages are requested until one comes back shorter than the page size, so a list whose
// length is an exact multiple of the page size costs one extra, empty request.
func (c *Client) CompanyOfficers(ctx context.Context, companyNumber string) ([]CompanyOfficer, error) {
	companyNumber = strings.TrimSpace(companyNumber)
	if companyNumber == "" {
		return nil, fmt.Errorf("company number is required")
	}
	u := c.resolve("company", companyNumber, "officers")

	officers := make([]CompanyOfficer, 0)
	for start := 0; ; start += c.pageSize {
		q := url.Values{}
		q.Set("start_index", strconv.Itoa(start))
		q.Set("items_per_page", strconv.Itoa(c.pageSize))

		var page itemsResponse[officerListItem]
		if err := c.getJSON(ctx, "companyOfficers", u, q, &page); err != nil {
			return nil, fmt.Errorf("company officers page start_index=%d: %w", start, err)
		}
		for _, it := range page.Items {
			officers = append(officers, CompanyOfficer{
				Name:        it.Name,
				OfficerRole: it.OfficerRole,
				AppointedOn: it.AppointedOn,
				ResignedOn:  it.ResignedOn,
			})
		}
		if len(page.Items) < c.pageSize {
			return officers, nil
		}
	}
}

// resolve joins path segments onto the base URL, escaping each segment.
func (c *Client) resolve(segments ...string) *url.URL {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	rel := &url.URL{
		Path:    strings.Join(segments, "/"),
		RawPath: strings.Join(escaped, "/"),
	}
	return c.baseURL.ResolveReference(rel)
}

func statusOK(code int) bool { return code == http.StatusOK }

func status2xx(code int) bool { return code/100 == 2 }

func (c *Client) getJSON(ctx context.Context, op string, ref *url.URL, q url.Values, out any) error {
	return c.fetchJSON(ctx, op, ref, q, out, status2xx)
}

// fetchJSON decodes the response body into out when accept(status) holds; any other
// status becomes an *HTTPError.
func (c *Client) fetchJSON(ctx context.Context, op string, ref *url.URL, q url.Values, out any, accept func(int) bool) error {
	u := *ref
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	// The API key is the basic-auth username; the password is empty.
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(op, 0, start)
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(resp.Body)
	c.observe(op, resp.StatusCode, start)
	if err != nil {
		return fmt.Errorf("%s: read body: %w", op, err)
	}
	if !accept(resp.StatusCode) {
		return newHTTPError(op, resp, b)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parse %s response: %w", op, err)
	}
	return nil
}

func (c *Client) observe(op string, status int, start time.Time) {
	elapsed := time.Since(start)
	c.log.Debug().
		Str("op", op).
		Int("status", status).
		Dur("duration", elapsed).
		Msg("registry request")
	if c.observer != nil {
		c.observer.ObserveRequest(op, status, elapsed)
	}
}
