package customHttpClient

import (
	"net/http"
	"time"

	"github.com/nmehta6/finqa/internal/config"
)

// one shared transport so model backends reuse connections to the
// local model server instead of re-dialing per request
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: customTransport,
		Timeout:   timeout,
	}
}
