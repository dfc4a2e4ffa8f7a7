package rocketchat

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	apiPrefix = "/api/v1"

	headerAuthToken = "X-Auth-Token"
	headerUserID    = "X-User-Id"
	headerRequestID = "X-Request-Id"
)

// request describes one call to the REST API. body is one of params,
// *multipartBody, string or nil.
type request struct {
	method           string
	path             string
	body             any
	headers          map[string]string
	token            *Token
	failUnlessOK     bool
	upstreamedErrors []string
}

type rawResponse struct {
	statusCode int
	status     string
	body       []byte
}

// multipartBody is a multipart/form-data POST body. Fields are sent in
// order.
type multipartBody struct {
	fields []multipartField
}

type multipartField struct {
	name        string
	fileName    string
	contentType string
	reader      io.Reader
}

func (b *multipartBody) addValue(name, value string) {
	b.fields = append(b.fields, multipartField{name: name, reader: strings.NewReader(value)})
}

func (b *multipartBody) addFile(name, fileName, contentType string, reader io.Reader) {
	if fileName == "" {
		if file, ok := reader.(*os.File); ok {
			fileName = filepath.Base(file.Name())
		} else {
			fileName = name
		}
	}

	b.fields = append(b.fields, multipartField{
		name:        name,
		fileName:    fileName,
		contentType: contentType,
		reader:      reader,
	})
}

// transport performs exactly one HTTP round-trip per call. It does not look
// at the response beyond returning status and body.
type transport struct {
	rest    *resty.Client
	limiter *rate.Limiter
	logger  RequestLogger
}

func newTransport(baseURL string, opts *Options) *transport {
	rest := resty.New().
		SetLogger(opts.requestLogger).
		SetBaseURL(baseURL).
		SetHeaders(opts.requestHeaders).
		SetTimeout(opts.timeout).
		SetRetryCount(0)

	if opts.insecureSkipVerify {
		rest.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true}) //nolint:gosec // opt-in for test servers
	}

	if opts.rootCertificateFile != "" {
		rest.SetRootCertificate(opts.rootCertificateFile)
	}

	rest.OnBeforeRequest(setRequestID)

	var limiter *rate.Limiter
	if opts.rateLimit != rate.Inf {
		limiter = rate.NewLimiter(opts.rateLimit, opts.rateBurst)
	}

	return &transport{
		rest:    rest,
		limiter: limiter,
		logger:  opts.requestLogger,
	}
}

func setRequestID(_ *resty.Client, r *resty.Request) error {
	if r.Header.Get(headerRequestID) == "" {
		r.SetHeader(headerRequestID, uuid.NewString())
	}

	return nil
}

func (t *transport) do(ctx context.Context, req request) (*rawResponse, error) {
	if req.method != http.MethodGet && req.method != http.MethodPost {
		return nil, &InvalidMethodError{Method: req.method}
	}

	restReq := t.rest.R().
		SetContext(ctx).
		SetHeaders(requestHeaders(req))

	if err := setRequestBody(restReq, req); err != nil {
		return nil, err
	}

	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	resp, err := restReq.Execute(req.method, req.path)
	if err != nil {
		t.logFailure(req, err)
		return nil, err
	}

	t.logger.Debugf("%s %s -> %d", req.method, req.path, resp.StatusCode())

	return &rawResponse{
		statusCode: resp.StatusCode(),
		status:     resp.Status(),
		body:       resp.Body(),
	}, nil
}

func setRequestBody(restReq *resty.Request, req request) error {
	switch body := req.body.(type) {
	case nil:
	case params:
		if req.method == http.MethodGet {
			restReq.SetQueryParamsFromValues(queryValues(body))
		} else {
			restReq.SetHeader("Content-Type", "application/json")
			restReq.SetBody(map[string]any(body))
		}
	case *multipartBody:
		if req.method != http.MethodPost {
			return fmt.Errorf("multipart body requires POST, got %s", req.method)
		}
		for _, field := range body.fields {
			restReq.SetMultipartField(field.name, field.fileName, field.contentType, field.reader)
		}
	case string:
		if req.method == http.MethodGet {
			restReq.SetQueryString(body)
		} else {
			restReq.SetBody(body)
		}
	default:
		return fmt.Errorf("unsupported request body type %T", req.body)
	}

	return nil
}

// requestHeaders merges the per-call headers with the token headers and
// drops anything with an empty name or value.
func requestHeaders(req request) map[string]string {
	headers := make(map[string]string, len(req.headers)+2)

	for name, value := range req.headers {
		headers[name] = value
	}

	if req.token != nil {
		headers[headerAuthToken] = req.token.AuthToken()
		headers[headerUserID] = req.token.UserID()
	}

	for name, value := range headers {
		if name == "" || value == "" {
			delete(headers, name)
		}
	}

	return headers
}

// queryValues form-encodes p. nil values are dropped.
func queryValues(p params) url.Values {
	values := url.Values{}

	for key, value := range p {
		if s, ok := queryValue(value); ok {
			values.Set(key, s)
		}
	}

	return values
}

func queryValue(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case fmt.Stringer:
		return v.String(), true
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v), true
		}
		return string(encoded), true
	}
}

func (t *transport) logFailure(req request, err error) {
	switch {
	case isCallerCancellation(err):
		t.logger.Debugf("%s %s abandoned: %v", req.method, req.path, err)
	case isDNSFailure(err):
		t.logger.Errorf("%s %s failed to resolve server: %v", req.method, req.path, err)
	default:
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			t.logger.Errorf("%s %s failed: %v", req.method, req.path, urlErr.Err)
			return
		}
		t.logger.Errorf("%s %s failed: %v", req.method, req.path, err)
	}
}
