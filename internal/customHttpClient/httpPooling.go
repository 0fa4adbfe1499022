package customHttpClient

import (
	"net/http"

	"tablerag/internal/config"
)

// Each provider client gets its own pooled connections so one slow or failing
// upstream call cannot starve the others.
var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

func NewPooledClient() *http.Client {
	return &http.Client{Transport: customTransport}
}
