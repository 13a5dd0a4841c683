// Package enrich runs the asynchronous lookups that decorate the core
// tracker: GitHub candidate search and the daily programming quote.
// Results arrive as Bubble Tea messages so the UI never blocks.
package enrich

import (
	"context"
	"log/slog"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/source"
	"github.com/nhle/techtrack/internal/source/quotes"
	"github.com/nhle/techtrack/internal/storage"
)

// quoteSlotKey is the storage slot caching today's quote.
const quoteSlotKey = "daily-quote"

// SearchResultMsg carries the outcome of a candidate search. Fallback
// is true when the results are canned because the source failed.
type SearchResultMsg struct {
	Token    uuid.UUID
	Query    string
	Results  []model.Technology
	Total    int
	HasMore  bool
	Fallback bool
	Err      error
}

// QuoteMsg carries the header quote. Fallback is true when the quote
// API was unreachable and a canned quote was served instead.
type QuoteMsg struct {
	Quote    quotes.Quote
	Fallback bool
}

// Service coordinates enrichment requests. Each search carries a token;
// starting a new search cancels the previous one, and results whose
// token no longer matches are dropped as stale.
type Service struct {
	mu       sync.Mutex
	searcher source.Searcher
	quotes   *quotes.Client
	binding  storage.Binding
	logger   *slog.Logger

	searchTok uuid.UUID
	cancel    context.CancelFunc

	// fallback produces canned candidates when the searcher fails.
	fallback func(query string) []model.Technology
}

// NewService creates an enrichment service. searcher and quoteClient
// may be nil when the corresponding source is disabled.
func NewService(
	searcher source.Searcher,
	quoteClient *quotes.Client,
	binding storage.Binding,
	logger *slog.Logger,
	fallback func(query string) []model.Technology,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		searcher: searcher,
		quotes:   quoteClient,
		binding:  binding,
		logger:   logger,
		fallback: fallback,
	}
}

// SearchEnabled reports whether a search source is configured.
func (s *Service) SearchEnabled() bool { return s.searcher != nil }

// Search starts a candidate search, cancelling any search in flight.
// The returned command delivers a SearchResultMsg whose Token matches
// the returned token; stale results deliver nil.
func (s *Service) Search(query string, opts source.FetchOptions) (uuid.UUID, tea.Cmd) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	s.cancel = cancel
	token := uuid.New()
	s.searchTok = token
	s.mu.Unlock()

	if s.searcher == nil {
		cancel()
		return token, nil
	}

	return token, func() tea.Msg {
		defer cancel()

		result, err := s.searcher.Search(ctx, query, opts)

		s.mu.Lock()
		stale := s.searchTok != token
		s.mu.Unlock()
		if stale || ctx.Err() == context.Canceled {
			return nil
		}

		if err != nil {
			s.logger.Warn("candidate search failed",
				"source", s.searcher.Name(), "query", query, "error", err)
			msg := SearchResultMsg{Token: token, Query: query, Err: err}
			if s.fallback != nil {
				msg.Results = s.fallback(query)
				msg.Total = len(msg.Results)
				msg.Fallback = true
			}
			return msg
		}

		return SearchResultMsg{
			Token:   token,
			Query:   query,
			Results: result.Items,
			Total:   result.Total,
			HasMore: result.HasMore,
		}
	}
}

// CancelSearch aborts any search in flight and invalidates its token.
func (s *Service) CancelSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.searchTok = uuid.Nil
}

// cachedQuote is the persisted form of the daily quote.
type cachedQuote struct {
	Date  string       `json:"date"`
	Quote quotes.Quote `json:"quote"`
}

// DailyQuote returns a command that resolves the header quote: today's
// cached quote if present, otherwise a fresh fetch cached under today's
// date. API failures serve a canned quote and leave the cache alone so
// the next launch retries.
func (s *Service) DailyQuote() tea.Cmd {
	if s.quotes == nil {
		return nil
	}

	return func() tea.Msg {
		today := time.Now().Format("2006-01-02")

		if s.binding != nil {
			var cached cachedQuote
			found, err := s.binding.Read(context.Background(), quoteSlotKey, &cached)
			if err != nil {
				s.logger.Warn("reading cached quote", "error", err)
			} else if found && cached.Date == today && cached.Quote.Text != "" {
				return QuoteMsg{Quote: cached.Quote}
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		quote, err := s.quotes.Random(ctx)
		if err != nil {
			s.logger.Warn("fetching daily quote", "error", err)
			return QuoteMsg{Quote: quotes.Fallback(), Fallback: true}
		}

		if s.binding != nil {
			err := s.binding.Write(context.Background(), quoteSlotKey, cachedQuote{
				Date:  today,
				Quote: quote,
			})
			if err != nil {
				s.logger.Warn("caching daily quote", "error", err)
			}
		}

		return QuoteMsg{Quote: quote}
	}
}
