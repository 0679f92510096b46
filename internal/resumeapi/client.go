package resumeapi

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL  = "http://localhost:8000"
	userAgent      = "cvmatch-cli"
	defaultTimeout = 60 * time.Second
)

// Client talks to the resume comparison backend.
type Client struct {
	// ctx used only for http requests right now
	ctx        context.Context
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(ctx context.Context, logger *zap.Logger, token string) *Client {
	return &Client{
		ctx:    ctx,
		token:  token,
		APIURL: defaultAPIURL,
		HTTPClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}

// SetTimeout overrides the default request timeout.
func (c *Client) SetTimeout(d time.Duration) {
	if d > 0 {
		c.HTTPClient.Timeout = d
	}
}
