package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/source"
	"github.com/nhle/techtrack/internal/source/quotes"
	"github.com/nhle/techtrack/internal/storage"
	"github.com/nhle/techtrack/tests/testutil"
)

// fakeSearcher returns canned results or an error.
type fakeSearcher struct {
	result *source.SearchResult
	err    error
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(
	_ context.Context, _ string, _ source.FetchOptions,
) (*source.SearchResult, error) {
	return f.result, f.err
}

func TestSearch_DeliversResultsWithMatchingToken(t *testing.T) {
	searcher := &fakeSearcher{result: &source.SearchResult{
		Items: []model.Technology{{Title: "Gin"}},
		Total: 1,
	}}
	svc := NewService(searcher, nil, nil, testutil.Logger(), nil)

	token, cmd := svc.Search("gin", source.FetchOptions{})
	require.NotNil(t, cmd)

	msg, ok := cmd().(SearchResultMsg)
	require.True(t, ok)
	assert.Equal(t, token, msg.Token)
	assert.Equal(t, "gin", msg.Query)
	require.Len(t, msg.Results, 1)
	assert.False(t, msg.Fallback)
	assert.NoError(t, msg.Err)
}

func TestSearch_NewSearchInvalidatesPrevious(t *testing.T) {
	searcher := &fakeSearcher{result: &source.SearchResult{}}
	svc := NewService(searcher, nil, nil, testutil.Logger(), nil)

	_, first := svc.Search("old", source.FetchOptions{})
	secondToken, second := svc.Search("new", source.FetchOptions{})

	// The superseded search resolves to nothing.
	assert.Nil(t, first())

	msg, ok := second().(SearchResultMsg)
	require.True(t, ok)
	assert.Equal(t, secondToken, msg.Token)
}

func TestSearch_FailureFallsBackToCannedCandidates(t *testing.T) {
	searcher := &fakeSearcher{err: assert.AnError}
	fallback := func(query string) []model.Technology {
		return []model.Technology{{Title: "Canned " + query}}
	}
	svc := NewService(searcher, nil, nil, testutil.Logger(), fallback)

	_, cmd := svc.Search("vue", source.FetchOptions{})
	msg, ok := cmd().(SearchResultMsg)
	require.True(t, ok)

	assert.Error(t, msg.Err)
	assert.True(t, msg.Fallback)
	require.Len(t, msg.Results, 1)
	assert.Equal(t, "Canned vue", msg.Results[0].Title)
}

func TestCancelSearch_DropsInFlightResult(t *testing.T) {
	searcher := &fakeSearcher{result: &source.SearchResult{}}
	svc := NewService(searcher, nil, nil, testutil.Logger(), nil)

	_, cmd := svc.Search("go", source.FetchOptions{})
	svc.CancelSearch()

	assert.Nil(t, cmd())
}

func TestSearchEnabled(t *testing.T) {
	assert.False(t, NewService(nil, nil, nil, testutil.Logger(), nil).SearchEnabled())
	assert.True(t, NewService(&fakeSearcher{}, nil, nil, testutil.Logger(), nil).SearchEnabled())
}

func TestDailyQuote_CachesTodaysQuote(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"en": "Simplicity is prerequisite for reliability.", "author": "Edsger Dijkstra"}`))
	}))
	defer srv.Close()

	binding := storage.NewMemoryBinding()
	svc := NewService(nil, quotes.NewClient(srv.URL), binding, testutil.Logger(), nil)

	first, ok := svc.DailyQuote()().(QuoteMsg)
	require.True(t, ok)
	assert.False(t, first.Fallback)
	assert.Equal(t, "Edsger Dijkstra", first.Quote.Author)

	second, ok := svc.DailyQuote()().(QuoteMsg)
	require.True(t, ok)
	assert.Equal(t, first.Quote, second.Quote)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDailyQuote_FallsBackWithoutCaching(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	binding := storage.NewMemoryBinding()
	svc := NewService(nil, quotes.NewClient(srv.URL), binding, testutil.Logger(), nil)

	msg, ok := svc.DailyQuote()().(QuoteMsg)
	require.True(t, ok)
	assert.True(t, msg.Fallback)
	assert.NotEmpty(t, msg.Quote.Text)

	_, cached := binding.Raw("daily-quote")
	assert.False(t, cached)
}

func TestDailyQuote_DisabledService(t *testing.T) {
	svc := NewService(nil, nil, nil, testutil.Logger(), nil)
	assert.Nil(t, svc.DailyQuote())
}
