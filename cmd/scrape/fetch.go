package main

import (
	"context"
	"fmt"
	"net/http"

	"dorm-menu-csv/internal/config"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "dorm-menu-csv"

// tracer is looked up per span so a provider installed after startup is used.
func tracer() trace.Tracer {
	return otel.Tracer("dorm-menu-csv.cmd.scrape")
}

// page is one fetched response, still in its original encoding.
type page struct {
	URL         string
	ContentType string
	Body        []byte
}

func newHTTPClient(src config.Source) *resty.Client {
	return resty.New().
		SetTimeout(src.Timeout()).
		SetRetryCount(src.RetryCount).
		AddRetryCondition(func(res *resty.Response, err error) bool {
			return res != nil && res.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("User-Agent", src.UserAgent)
}

func fetchPage(ctx context.Context, client *resty.Client, url string) (page, error) {
	ctx, span := tracer().Start(ctx, "fetchPage")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	res, err := client.R().SetContext(ctx).Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return page{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		err := fmt.Errorf("fetch %s: bad status: %s", url, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad status")
		return page{}, err
	}

	pg := page{
		URL:         url,
		ContentType: res.Header().Get("Content-Type"),
		Body:        res.Body(),
	}
	span.SetAttributes(
		attribute.String("content_type", pg.ContentType),
		attribute.Int("bytes", len(pg.Body)),
	)
	return pg, nil
}
