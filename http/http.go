// Package http is a small wrapper for downloading structure files.
package http

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Timeout bounds a whole download, including reading the body.
var Timeout = 120 * time.Second

// Get downloads url and returns the response body. Any status other than 200 is an error.
func Get(url string) ([]byte, error) {
	client := http.Client{
		Timeout: Timeout,
	}

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "chemical/x-pdb, text/plain")

	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP status code %d from %s", res.StatusCode, url)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %v", err)
	}

	return body, nil
}
