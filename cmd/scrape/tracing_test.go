package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory provider for the duration of the test.
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	prev := otel.GetTracerProvider()
	sr := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func endedSpan(t *testing.T, sr *tracetest.SpanRecorder, name string) sdktrace.ReadOnlySpan {
	t.Helper()
	for _, span := range sr.Ended() {
		if span.Name() == name {
			return span
		}
	}
	t.Fatalf("no ended span named %q", name)
	return nil
}

func TestFetchPageSpanRecordsBadStatus(t *testing.T) {
	sr := recordSpans(t)
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	_, err := fetchPage(context.Background(), newHTTPClient(testSource(srv.URL)), srv.URL)
	require.Error(t, err)

	span := endedSpan(t, sr, "fetchPage")
	require.Equal(t, codes.Error, span.Status().Code)
	require.Equal(t, "bad status", span.Status().Description)
	require.Len(t, span.Events(), 1)
	require.Equal(t, "exception", span.Events()[0].Name)
}

func TestUploadArtifactSpanRecordsError(t *testing.T) {
	sr := recordSpans(t)
	api := &fakePutter{err: errors.New("access denied")}

	_, err := uploadArtifact(context.Background(), api, "menus", "dorm_menu.csv", contentTypeCSV, nil)
	require.Error(t, err)

	span := endedSpan(t, sr, "uploadArtifact")
	require.Equal(t, codes.Error, span.Status().Code)
	require.Equal(t, "put object failed", span.Status().Description)
}

func TestExtractPageSpanCarriesCodec(t *testing.T) {
	sr := recordSpans(t)
	src := testSource("http://127.0.0.1:1")
	pg := page{URL: "file:///page.html", ContentType: "text/html", Body: eucKR(t, schedulePage)}

	out, err := extractPage(context.Background(), pg, src, time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, "cp949", out.Meta.Encoding)

	span := endedSpan(t, sr, "extractPage")
	attrs := map[string]string{}
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	require.Equal(t, "cp949", attrs["codec"])
	require.Equal(t, "2", attrs["records"])
}

func TestRunCommandExportsTraces(t *testing.T) {
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	var exports atomic.Int32
	collector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/v1/traces" {
			exports.Add(1)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer collector.Close()

	srv, _ := dormServer(t)
	cfgPath := setupEnv(t, srv.URL, "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", collector.URL)
	outDir := t.TempDir()

	_, _, err := execute(t, "--config", cfgPath, "run", "--no-upload", "--out", outDir, "--date", "2025-03-10")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(outDir, "menu.csv"))
	require.NoError(t, err)

	// execute shuts the provider down, which flushes the batch
	require.Positive(t, exports.Load())
}
