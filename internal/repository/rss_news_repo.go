package repository

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"trading-assistant/config"
	"trading-assistant/internal/dto"
	"trading-assistant/pkg/common"
	"trading-assistant/pkg/httpclient"
	"trading-assistant/pkg/logger"
	"trading-assistant/pkg/ratelimit"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// RSSNewsRepository reads market headlines from an RSS/Atom feed. The category is ignored,
// the feed itself decides what it covers.
type RSSNewsRepository interface {
	NewsProvider
}

type rssNewsRepository struct {
	httpClient httpclient.HTTPClient
	cfg        config.Provider
	logger     *logger.Logger
	limiters   *ratelimit.LimiterStore
}

func NewRSSNewsRepository(cfg config.Provider, log *logger.Logger, limiters *ratelimit.LimiterStore) RSSNewsRepository {
	limiters.SetLimit(common.PROVIDER_RSS, ratelimit.PerMinute(cfg.MaxRequestPerMinute), 1)

	return &rssNewsRepository{
		httpClient: httpclient.New(log, cfg.BaseURL, cfg.Timeout),
		cfg:        cfg,
		logger:     log,
		limiters:   limiters,
	}
}

func (r *rssNewsRepository) Name() string {
	return common.PROVIDER_RSS
}

func (r *rssNewsRepository) GetNews(ctx context.Context, category string) ([]dto.NewsItem, error) {
	if err := r.limiters.Wait(ctx, r.Name()); err != nil {
		return nil, fmt.Errorf("rss rate limit wait: %w", err)
	}

	headers := map[string]string{
		"Accept": "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8",
	}
	resp, err := r.httpClient.Get(ctx, r.cfg.Path, nil, headers, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rss feed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.WarnContext(ctx, "RSS feed returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("rss feed returned status: %d", resp.StatusCode)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse rss feed: %w", err)
	}

	if len(feed.Items) == 0 {
		return nil, fmt.Errorf("rss feed: %w", ErrNoData)
	}

	// newest first, items without a date keep their feed order at the end
	sort.SliceStable(feed.Items, func(i, j int) bool {
		a, b := feed.Items[i].PublishedParsed, feed.Items[j].PublishedParsed
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})

	news := make([]dto.NewsItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		newsItem := dto.NewsItem{
			ID:       firstNonEmpty(item.GUID, item.Link),
			Headline: strings.TrimSpace(item.Title),
			Summary:  HTMLToText(firstNonEmpty(item.Description, item.Content)),
			Source:   feed.Title,
		}
		if item.PublishedParsed != nil {
			newsItem.Timestamp = item.PublishedParsed.UTC()
		}
		news = append(news, newsItem)
	}
	return news, nil
}

// HTMLToText strips markup from a feed description and collapses whitespace.
func HTMLToText(html string) string {
	if html == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
