package resumeapi

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"
)

// ServerError is a non-2xx response from the backend. The backend reports
// failures as a JSON body with an optional "detail" field.
type ServerError struct {
	Status int
	Detail string
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}

	return fmt.Sprintf("server error (%d)", e.Status)
}

// getJSON makes a GET request and decodes the response body into target.
func (c *Client) getJSON(url string, target interface{}) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newServerError(resp.StatusCode, data)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

// postMultipart posts the prepared multipart body and decodes a 2xx response
// into target. Non-2xx statuses are returned as *ServerError.
func (c *Client) postMultipart(url string, body *bytes.Buffer, contentType string, target interface{}) error {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}

	req = c.setHeaders(req)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.request(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := readBody(resp)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newServerError(resp.StatusCode, data)
	}

	if target == nil {
		return nil
	}

	return json.Unmarshal(data, target)
}

func (c *Client) request(req *http.Request) (*http.Response, error) {
	c.logger.Debug("make request", zap.String("url", req.URL.String()))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (c *Client) setHeaders(req *http.Request) *http.Request {
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	return req
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		reader = gzipReader
	}

	return io.ReadAll(reader)
}

// newServerError extracts the backend "detail" message when the error body
// carries one. Anything unparseable is treated as an empty object.
func newServerError(status int, data []byte) *ServerError {
	var body struct {
		Detail string `json:"detail"`
	}

	// best effort; a plain-text or empty body still yields a usable error
	_ = json.Unmarshal(data, &body)

	return &ServerError{Status: status, Detail: body.Detail}
}

// writeMultipart creates a multipart writer over a fresh buffer.
func writeMultipart() (*bytes.Buffer, *multipart.Writer) {
	var b bytes.Buffer
	return &b, multipart.NewWriter(&b)
}
