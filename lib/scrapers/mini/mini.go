package mini

import (
	"context"
	"fmt"
	"minicrossword/lib/clues"
	"minicrossword/lib/restyutil"
	"net/url"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("minicrossword.lib.scrapers.mini")
var meter = otel.Meter("minicrossword.lib.scrapers.mini")

const DefaultUrl = "https://www.nytimes.com/crosswords/game/mini"

type Client struct {
	Url  string
	Http *resty.Client

	scrapes metric.Int64Counter
}

type ClientOptions struct {
	// defaults to DefaultUrl
	Url string
	// defaults to 30 seconds
	Timeout time.Duration
	// when set and debug logging is enabled, every http exchange is dumped here
	Output restyutil.InstrumentOutput
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.Url == "" {
		opts.Url = DefaultUrl
	}
	if opts.Timeout == 0 {
		opts.Timeout = time.Second * 30
	}
	link, err := url.Parse(opts.Url)
	if err != nil {
		return nil, err
	}
	if link.Scheme != "http" && link.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", link.Scheme)
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	client.SetTimeout(opts.Timeout)
	restyutil.InstrumentClient(client, tracer, opts.Output)

	scrapes, err := meter.Int64Counter(
		"scrapes",
		metric.WithDescription("puzzle pages scraped, by outcome"),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		Url:     link.String(),
		Http:    client,
		scrapes: scrapes,
	}, nil
}

// FetchPage downloads the raw markup of the puzzle page.
func (c *Client) FetchPage(ctx context.Context) (string, error) {
	ctx, span := tracer.Start(ctx, "client:FetchPage")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.Url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return "", err
	}
	if res.IsError() {
		err = fmt.Errorf("fetch %s: unexpected status %s", c.Url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return "", err
	}

	span.SetAttributes(attribute.Int("body_size", len(res.Body())))
	return string(res.Body()), nil
}

// Scrape fetches the puzzle page and parses its clues.
func (c *Client) Scrape(ctx context.Context) (*clues.Model, error) {
	ctx, span := tracer.Start(ctx, "client:Scrape")
	defer span.End()

	outcome := "ok"
	defer func() {
		c.scrapes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	}()

	page, err := c.FetchPage(ctx)
	if err != nil {
		outcome = "fetch_error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch page")
		return nil, err
	}

	model, err := clues.Parse(ctx, page)
	if err != nil {
		outcome = "parse_error"
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse page")
		return nil, err
	}
	return model, nil
}
