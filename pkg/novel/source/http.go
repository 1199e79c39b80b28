package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// DefaultUserAgent identifies requests made by HTTP sources.
const DefaultUserAgent = "novelstat/1.0"

// HTTP reads the lines of a remote plain-text resource. Each pass issues a
// new GET request; wrap it in Cached to download once.
type HTTP struct {
	URL       string
	Client    *http.Client // http.DefaultClient when nil
	UserAgent string
}

// Lines implements Source. The body is converted to UTF-8 using the charset
// in the Content-Type header. HTML responses have their markup stripped;
// other non-text responses fail with a FetchError.
func (h HTTP) Lines(ctx context.Context, fn func(line string) error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return &FetchError{URL: h.URL, Err: err}
	}
	ua := h.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return &FetchError{URL: h.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{URL: h.URL, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	contentType := resp.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		mediaType, _, err = mime.ParseMediaType(contentType)
		if err != nil {
			return &FetchError{URL: h.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("bad content type %q: %w", contentType, err)}
		}
		if !strings.HasPrefix(mediaType, "text/") {
			return &FetchError{URL: h.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("non-text content type %q", mediaType)}
		}
	}

	body, err := decodeBody(resp.Body, contentType)
	if err != nil {
		return &FetchError{URL: h.URL, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode body: %w", err)}
	}

	if mediaType == "text/html" {
		text, err := StripHTML(body)
		if err != nil {
			return &FetchError{URL: h.URL, StatusCode: resp.StatusCode, Err: err}
		}
		body = strings.NewReader(text)
	}

	return readLines(ctx, h.URL, body, fn)
}

// decodeBody converts body to UTF-8 using the charset of the Content-Type
// header or, failing that, the leading bytes. UTF-8 bodies are passed through
// untouched so that invalid bytes reach the line reader instead of being
// replaced with U+FFFD.
func decodeBody(body io.Reader, contentType string) (io.Reader, error) {
	br := bufio.NewReaderSize(body, 1024)
	peek, err := br.Peek(1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	enc, name, _ := charset.DetermineEncoding(peek, contentType)
	if name == "utf-8" {
		return br, nil
	}
	return enc.NewDecoder().Reader(br), nil
}

// StripHTML returns the text content of an HTML document. Block elements
// and <br> start new lines; script and style contents are dropped.
func StripHTML(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "head":
				return
			case "br":
				buf.WriteByte('\n')
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
		if n.Type == html.ElementNode && isBlock(n.Data) {
			buf.WriteByte('\n')
		}
	}
	extractText(doc)

	return buf.String(), nil
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "pre", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "blockquote":
		return true
	}
	return false
}
