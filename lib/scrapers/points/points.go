// Package points scrapes the published points table of a course.
package points

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"gradecalc/lib/gradebook"
	"gradecalc/lib/htmlutil"
	"gradecalc/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/points")

const DefaultUrl = "https://www.cosy.sbg.ac.at/~uhl/points.html"

type ClientOptions struct {
	// defaults to DefaultUrl
	Url     string
	Timeout time.Duration
	// wraps the transport with browser-like headers and TLS settings
	CloudflareBypass bool
	// if not nil, request/response pairs are written to it when debug
	// logging is enabled
	Dumps restyutil.Output
}

type Client struct {
	Url  string
	http *resty.Client
}

func NewClient(opts ClientOptions) Client {
	if opts.Url == "" {
		opts.Url = DefaultUrl
	}

	client := resty.New()
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	restyutil.InstrumentClient(client, tracer, opts.Dumps)

	return Client{
		Url:  opts.Url,
		http: client,
	}
}

// FetchRows downloads the points page and returns its table rows.
func (c Client) FetchRows(ctx context.Context) ([]gradebook.Row, error) {
	ctx, span := tracer.Start(ctx, "client:FetchRows")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.Url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch points page")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s: unexpected status %s", c.Url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad status")
		return nil, err
	}

	rows, err := ParseRows(ctx, bytes.NewReader(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse points page")
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows, nil
}

// ParseRows reads an html document and returns every table row in it.
func ParseRows(ctx context.Context, r io.Reader) ([]gradebook.Row, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	tableRows := htmlutil.TableRows(ctx, doc.Selection)
	rows := make([]gradebook.Row, len(tableRows))
	for i, cells := range tableRows {
		rows[i] = gradebook.Row(cells)
	}
	return rows, nil
}
