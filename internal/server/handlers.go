package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"stocktracker/internal/market/memorystore"
	"stocktracker/internal/market/simulator"
	"stocktracker/internal/market/view"
	"stocktracker/internal/watchlist"
	"stocktracker/pkg/market"

	"go.uber.org/zap"
)

type stocksResponse struct {
	view.Page
	Filter    market.Filter  `json:"filter"`
	Sort      market.SortKey `json:"sort"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Loading   bool           `json:"loading"`
	Error     string         `json:"error,omitempty"`
}

type stockResponse struct {
	Stock   market.StockRecord `json:"stock"`
	Metrics simulator.Metrics  `json:"metrics"`
	Watched bool               `json:"watched"`
}

type toggleResponse struct {
	Symbol string `json:"symbol"`
	Added  bool   `json:"added"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := s.stocks.Snapshot()
	writeJSON(w, http.StatusOK, stocksResponse{
		Page:      q.Apply(snap.Stocks, s.watchlist.Symbols()),
		Filter:    q.Filter,
		Sort:      q.Sort,
		UpdatedAt: snap.UpdatedAt,
		Loading:   snap.Loading,
		Error:     snap.Error,
	})
}

func parseQuery(r *http.Request) (view.Query, error) {
	values := r.URL.Query()
	q := view.NewQuery()

	filter, err := market.ParseFilter(values.Get("filter"))
	if err != nil {
		return q, err
	}
	key, err := market.ParseSortKey(values.Get("sort"))
	if err != nil {
		return q, err
	}
	q.SetFilter(filter)
	q.SetSort(key)

	if p := values.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			return q, errors.New("invalid page: " + p)
		}
		q.SetPage(page)
	}
	return q, nil
}

func (s *Server) handleStock(w http.ResponseWriter, r *http.Request) {
	symbol := r.PathValue("symbol")

	rec, ok := s.stocks.GetBySymbol(symbol)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown symbol: "+symbol)
		return
	}

	writeJSON(w, http.StatusOK, stockResponse{
		Stock:   rec,
		Metrics: simulator.Fundamentals(s.rand, rec),
		Watched: s.watchlist.Contains(rec.Symbol),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.stocks.Refresh(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, s.stocks.Snapshot())
	case errors.Is(err, memorystore.ErrRefreshFailed):
		writeError(w, http.StatusBadGateway, memorystore.ErrRefreshFailed.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "refresh cancelled")
	default:
		s.logger.Error("refresh failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, view.Overview(s.stocks.Snapshot().Stocks))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	limit := view.DefaultSearchLimit
	if l := values.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit: "+l)
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, view.Search(s.stocks.Snapshot().Stocks, values.Get("q"), limit))
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.watchlist.Entries())
}

func (s *Server) handleWatchlistAdd(w http.ResponseWriter, r *http.Request) {
	if err := s.watchlist.Add(r.Context(), r.PathValue("symbol")); err != nil {
		s.watchlistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.watchlist.Entries())
}

func (s *Server) handleWatchlistRemove(w http.ResponseWriter, r *http.Request) {
	if err := s.watchlist.Remove(r.Context(), r.PathValue("symbol")); err != nil {
		s.watchlistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.watchlist.Entries())
}

func (s *Server) handleWatchlistToggle(w http.ResponseWriter, r *http.Request) {
	symbol := market.NormalizeSymbol(r.PathValue("symbol"))

	added, err := s.watchlist.Toggle(r.Context(), symbol)
	if err != nil {
		s.watchlistError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toggleResponse{Symbol: symbol, Added: added})
}

func (s *Server) watchlistError(w http.ResponseWriter, err error) {
	if errors.Is(err, watchlist.ErrEmptySymbol) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Error("watchlist update failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}
