package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/net/html"

	"github.com/sells-group/vendor-scout/internal/model"
)

// maxBodyBytes caps how much of a response we read. Vendor pages are text;
// anything bigger is a misbehaving endpoint.
const maxBodyBytes = 4 << 20

// Client fetches and parses market website pages.
type Client struct {
	http      *http.Client
	userAgent string
}

// NewClient returns a page fetcher with the given timeout and User-Agent.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// CleanURL normalizes a raw URL from the market list. Scheme-less URLs get
// https. Bare "facebook.com" entries (a spreadsheet placeholder for "they
// only have a Facebook page, somewhere") are rejected as unusable.
func CleanURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", eris.New("fetcher: empty url")
	}

	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}

	switch u {
	case "https://facebook.com", "https://www.facebook.com", "https://or facebook.com":
		return "", eris.Errorf("fetcher: unusable url %q", raw)
	}

	return u, nil
}

// Fetch retrieves one page and parses it into text, title, and links.
// Non-200 responses are errors; callers record them per page rather than
// aborting the crawl.
func (c *Client) Fetch(ctx context.Context, pageURL string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: fetch page")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("fetcher: %s returned status %d", pageURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: read body")
	}

	page, err := ParsePage(pageURL, string(body))
	if err != nil {
		return nil, err
	}
	page.StatusCode = resp.StatusCode
	return page, nil
}

// ParsePage extracts title, visible text, and links from an HTML document.
// Script, style, and page-chrome containers are dropped from the text so
// content scoring sees what a visitor reads, not the nav.
func ParsePage(pageURL, rawHTML string) (*model.Page, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, eris.Wrap(err, "fetcher: parse html")
	}

	page := &model.Page{URL: pageURL}
	var textParts []string

	var walk func(n *html.Node, skipText bool)
	walk = func(n *html.Node, skipText bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "nav", "footer", "header":
				skipText = true
			case "title":
				if n.FirstChild != nil && page.Title == "" {
					page.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "a":
				if href := attr(n, "href"); href != "" {
					page.Links = append(page.Links, model.Link{
						URL:    href,
						Anchor: collapseWhitespace(nodeText(n)),
					})
				}
			}
		}

		if n.Type == html.TextNode && !skipText {
			if s := strings.TrimSpace(n.Data); s != "" {
				textParts = append(textParts, s)
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child, skipText)
		}
	}
	walk(doc, false)

	page.Text = collapseWhitespace(strings.Join(textParts, " "))
	return page, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
