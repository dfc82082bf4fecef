package crawl

import (
	"context"
	"net/url"

	"github.com/fwojciec/herbarium"
	"github.com/temoto/robotstxt"
)

// robotsAgent is the token matched against robots.txt user-agent groups.
const robotsAgent = "herbarium"

// Robots gates crawling on the source site's robots.txt. A nil *Robots, or
// one built from an unreachable or unparseable robots.txt, allows
// everything: politeness must not turn an outage into a silent no-op run.
type Robots struct {
	data *robotstxt.RobotsData
}

// FetchRobots retrieves and parses the site's robots.txt once per run.
func FetchRobots(ctx context.Context, fetcher herbarium.Fetcher, site Site) *Robots {
	body, err := fetcher.Fetch(ctx, site.BaseURL+"/robots.txt")
	if err != nil {
		return &Robots{}
	}
	data, err := robotstxt.FromString(body)
	if err != nil {
		return &Robots{}
	}
	return &Robots{data: data}
}

// Allowed reports whether the URL's path may be crawled.
func (r *Robots) Allowed(rawURL string) bool {
	if r == nil || r.data == nil {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return r.data.TestAgent(u.Path, robotsAgent)
}
