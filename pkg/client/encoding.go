package client

import (
	"mime"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/charmap"
)

// The service expects query strings in ISO-8859-1, not UTF-8.
var latin1 = charmap.ISO8859_1

// secretFields are query keys whose values never appear in errors.
var secretFields = map[string]bool{"pwd": true}

// toLatin1 transcodes s to ISO-8859-1 bytes. Characters outside the charset
// are rejected rather than replaced.
func toLatin1(field, s string) (string, error) {
	for i, r := range s {
		if _, ok := latin1.EncodeRune(r); !ok {
			if secretFields[field] {
				return "", &EncodingError{Field: field, Redacted: true}
			}
			return "", &EncodingError{Field: field, Value: s, Rune: r, Offset: i}
		}
	}
	out, err := latin1.NewEncoder().String(s)
	if err != nil {
		if secretFields[field] {
			return "", &EncodingError{Field: field, Redacted: true}
		}
		return "", &EncodingError{Field: field, Value: s}
	}
	return out, nil
}

// encodeQuery is url.Values.Encode with every key and value sent as ISO-8859-1.
func encodeQuery(params url.Values) (string, error) {
	if len(params) == 0 {
		return "", nil
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		key, err := toLatin1(k, k)
		if err != nil {
			return "", err
		}
		for _, v := range params[k] {
			val, err := toLatin1(k, v)
			if err != nil {
				return "", err
			}
			if sb.Len() > 0 {
				sb.WriteByte('&')
			}
			sb.WriteString(url.QueryEscape(key))
			sb.WriteByte('=')
			sb.WriteString(url.QueryEscape(val))
		}
	}
	return sb.String(), nil
}

// decodeBody returns the response body as UTF-8 text, transcoding when the
// Content-Type names another charset. Without a usable charset, bodies that
// are not valid UTF-8 are read as ISO-8859-1, the service's own encoding.
func decodeBody(contentType string, body []byte) string {
	var label string
	if _, params, err := mime.ParseMediaType(contentType); err == nil {
		label = params["charset"]
	}
	if label != "" {
		if enc, name := charset.Lookup(label); enc != nil {
			if name == "utf-8" {
				return string(body)
			}
			if out, err := enc.NewDecoder().Bytes(body); err == nil {
				return string(out)
			}
		}
	}
	if utf8.Valid(body) {
		return string(body)
	}
	out, err := latin1.NewDecoder().Bytes(body)
	if err != nil {
		return string(body)
	}
	return string(out)
}
