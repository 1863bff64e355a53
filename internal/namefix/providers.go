package namefix

import (
	"context"

	"github.com/sells-group/platleague/pkg/duckduckgo"
	"github.com/sells-group/platleague/pkg/jina"
)

// SiteScope restricts searches to game record pages.
const SiteScope = "howlongtobeat.com/game"

// DuckDuckGo searches the DuckDuckGo HTML endpoint.
type DuckDuckGo struct {
	client duckduckgo.Client
}

// NewDuckDuckGo wraps a DuckDuckGo client as a Provider.
func NewDuckDuckGo(c duckduckgo.Client) *DuckDuckGo {
	return &DuckDuckGo{client: c}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

func (d *DuckDuckGo) Titles(ctx context.Context, query string) ([]string, error) {
	results, err := d.client.Search(ctx, "site:"+SiteScope+" "+query)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(results))
	for _, r := range results {
		titles = append(titles, r.Title)
	}
	return titles, nil
}

// Jina searches through the Jina search API.
type Jina struct {
	client jina.Client
}

// NewJina wraps a Jina client as a Provider.
func NewJina(c jina.Client) *Jina {
	return &Jina{client: c}
}

func (j *Jina) Name() string { return "jina" }

func (j *Jina) Titles(ctx context.Context, query string) ([]string, error) {
	resp, err := j.client.Search(ctx, query, jina.WithSiteFilter(SiteScope))
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(resp.Data))
	for _, r := range resp.Data {
		titles = append(titles, r.Title)
	}
	return titles, nil
}
