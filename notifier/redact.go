package notifier

import (
	"errors"
	"net/url"
	"strings"
)

const redacted = "xxxxx"

// secretParams are query parameters that carry credentials.
var secretParams = map[string]struct{}{
	"token":    {},
	"password": {},
}

// RedactQuery masks the values of credential parameters in an encoded
// query string. Parameter order is preserved.
func RedactQuery(rawQuery string) string {
	if rawQuery == "" {
		return rawQuery
	}

	pairs := strings.Split(rawQuery, "&")
	for i, pair := range pairs {
		key, _, found := strings.Cut(pair, "=")
		if _, secret := secretParams[key]; found && secret {
			pairs[i] = key + "=" + redacted
		}
	}

	return strings.Join(pairs, "&")
}

// RedactURL applies RedactQuery to the query part of rawURL.
func RedactURL(rawURL string) string {
	base, rawQuery, found := strings.Cut(rawURL, "?")
	if !found {
		return rawURL
	}

	return base + "?" + RedactQuery(rawQuery)
}

// redactError masks credentials in the URL carried by a *url.Error inside
// err, as returned by the HTTP transport.
func redactError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		urlErr.URL = RedactURL(urlErr.URL)
	}

	return err
}
