package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"StockWatch/internal/model"
)

type fakeDoer struct {
	responses []*http.Response
	err       error
	calls     int
	lastURL   string
}

func (f *fakeDoer) Do(_ context.Context, req *http.Request) (*http.Response, error) {
	f.calls++
	f.lastURL = req.URL.String()
	if f.err != nil {
		return nil, f.err
	}
	if f.calls > len(f.responses) {
		return nil, errors.New("no more responses")
	}
	return f.responses[f.calls-1], nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func chartBody(timestamps []int64, closes []float64) string {
	ts, op, hi, lo, cl, vol := "", "", "", "", "", ""
	for i, t := range timestamps {
		if i > 0 {
			ts, op, hi, lo, cl, vol = ts+",", op+",", hi+",", lo+",", cl+",", vol+","
		}
		ts += fmt.Sprintf("%d", t)
		op += fmt.Sprintf("%g", closes[i]*0.99)
		hi += fmt.Sprintf("%g", closes[i]*1.01)
		lo += fmt.Sprintf("%g", closes[i]*0.98)
		cl += fmt.Sprintf("%g", closes[i])
		vol += "1000"
	}
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[{"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]}]}}],"error":null}}`,
		ts, op, hi, lo, cl, vol)
}

func TestYahooFetchHistory_ParsesAndSorts(t *testing.T) {
	// Out of order on purpose; the fetcher must sort ascending.
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, chartBody([]int64{86400 * 3, 86400, 86400 * 2}, []float64{103, 101, 102})),
	}}
	f := &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

	bars, err := f.FetchHistory(context.Background(), "aapl", model.Period6Mo)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	require.True(t, bars[0].Time.Before(bars[1].Time))
	require.True(t, bars[1].Time.Before(bars[2].Time))
	require.InDelta(t, 101.0, bars[0].Close, 1e-9)
	require.Contains(t, doer.lastURL, "/v8/finance/chart/AAPL")
	require.Contains(t, doer.lastURL, "range=6mo")
}

func TestYahooFetchHistory_SkipsNullBars(t *testing.T) {
	body := `{"chart":{"result":[{"timestamp":[86400,172800],"indicators":{"quote":[{` +
		`"open":[10,null],"high":[11,null],"low":[9,null],"close":[10.5,null],"volume":[100,null]}]}}],"error":null}}`
	doer := &fakeDoer{responses: []*http.Response{jsonResponse(200, body)}}
	f := &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

	bars, err := f.FetchHistory(context.Background(), "AAPL", model.Period1Mo)
	require.NoError(t, err)
	require.Len(t, bars, 1)
}

func TestYahooFetchHistory_DeduplicatesTimestamps(t *testing.T) {
	doer := &fakeDoer{responses: []*http.Response{
		jsonResponse(200, chartBody([]int64{86400, 86400, 172800}, []float64{10, 10, 11})),
	}}
	f := &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

	bars, err := f.FetchHistory(context.Background(), "AAPL", model.Period1Mo)
	require.NoError(t, err)
	require.Len(t, bars, 2)
}

func TestYahooFetchHistory_InvalidPeriodRejectedBeforeCall(t *testing.T) {
	doer := &fakeDoer{}
	f := &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

	_, err := f.FetchHistory(context.Background(), "AAPL", model.Period("9mo"))
	require.ErrorIs(t, err, ErrInvalidPeriod)
	require.Zero(t, doer.calls)
}

func TestYahooFetchHistory_UnknownTicker(t *testing.T) {
	notFound := `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

	for _, resp := range []*http.Response{
		jsonResponse(404, notFound),
		jsonResponse(200, notFound),
		jsonResponse(200, `{"chart":{"result":[],"error":null}}`),
	} {
		doer := &fakeDoer{responses: []*http.Response{resp}}
		f := &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

		_, err := f.FetchHistory(context.Background(), "ZZZZ", model.Period6Mo)
		require.ErrorIs(t, err, ErrUnknownTicker)
	}
}

func TestYahooFetchHistory_ProviderUnavailable(t *testing.T) {
	doer := &fakeDoer{err: errors.New("connection reset")}
	f := &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

	_, err := f.FetchHistory(context.Background(), "AAPL", model.Period6Mo)
	require.ErrorIs(t, err, ErrProviderUnavailable)

	doer = &fakeDoer{responses: []*http.Response{jsonResponse(500, "oops")}}
	f = &YahooFetcher{BaseURL: "http://yahoo.test", Client: doer}

	_, err = f.FetchHistory(context.Background(), "AAPL", model.Period6Mo)
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestNormalizeBars(t *testing.T) {
	base := time.Unix(1000, 0).UTC()
	bars := normalizeBars([]model.Bar{
		{Time: base.Add(2 * time.Hour), Close: 3},
		{Time: base, Close: 1},
		{Time: base, Close: 1},
		{Time: base.Add(time.Hour), Close: 2},
	})
	require.Len(t, bars, 3)
	for i := 1; i < len(bars); i++ {
		require.True(t, bars[i-1].Time.Before(bars[i].Time))
	}
}
