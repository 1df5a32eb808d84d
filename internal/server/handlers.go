package server

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/hyperjump/pakar/internal/models"
	"github.com/hyperjump/pakar/internal/recommend"
	"github.com/hyperjump/pakar/internal/validation"
)

// maxBodyBytes bounds recommendation request bodies.
const maxBodyBytes = 64 << 10

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var query models.RecommendQuery
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&query); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.recommend(w, r, &query)
}

// handleRecommendForm accepts the same query as URL parameters, as submitted by a GET form.
func (s *Server) handleRecommendForm(w http.ResponseWriter, r *http.Request) {
	query, err := queryFromValues(r.URL.Query())
	if err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	s.recommend(w, r, query)
}

func (s *Server) recommend(w http.ResponseWriter, r *http.Request, query *models.RecommendQuery) {
	s.logger.Debug("recommend request",
		zap.Int64("budget", query.Budget),
		zap.String("category", query.Category),
		zap.String("sub_category", query.SubCategory),
		zap.String("sort", string(query.Sort)),
	)
	page, err := s.engine.Recommend(r.Context(), query)
	if err != nil {
		s.respondRecommendError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, page)
}

func (s *Server) respondRecommendError(w http.ResponseWriter, err error) {
	var invalid *recommend.InvalidQueryError
	switch {
	case errors.As(err, &invalid):
		s.respondJSON(w, http.StatusBadRequest, errorBody{Error: invalid.Error(), Fields: invalid.Fields})
	case errors.Is(err, recommend.ErrNotReady):
		s.respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.respondError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		s.logger.Error("recommend failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// queryFromValues reads a RecommendQuery from form values. Budget accepts grouping
// separators such as "10.000.000" or "10,000,000".
func queryFromValues(v url.Values) (*models.RecommendQuery, error) {
	q := &models.RecommendQuery{
		Category:    v.Get("category"),
		SubCategory: v.Get("sub_category"),
		Search:      v.Get("search"),
		Brand:       v.Get("brand"),
		Sort:        models.SortOption(v.Get("sort")),
	}
	if raw := v.Get("budget"); raw != "" {
		digits := strings.NewReplacer(".", "", ",", "", " ", "", "_", "").Replace(raw)
		b, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return nil, errors.New("budget must be a whole number")
		}
		q.Budget = b
	}
	var err error
	if q.Page, err = intParam(v, "page"); err != nil {
		return nil, err
	}
	if q.PageSize, err = intParam(v, "page_size"); err != nil {
		return nil, err
	}
	return q, nil
}

func intParam(v url.Values, name string) (int, error) {
	raw := v.Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be a whole number")
	}
	return n, nil
}

func (s *Server) handleBrands(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string][]string{"brands": s.engine.ListBrands()})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{"categories": s.engine.Categories()})
}

type healthResponse struct {
	Status    string `json:"status"`
	CatalogID string `json:"catalog_id,omitempty"`
	Products  int    `json:"products"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	c := s.engine.Catalog()
	if c == nil {
		s.respondJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not_ready"})
		return
	}
	s.respondJSON(w, http.StatusOK, healthResponse{Status: "ok", CatalogID: c.ID(), Products: c.Len()})
}

type statusResponse struct {
	Ready     bool      `json:"ready"`
	CatalogID string    `json:"catalog_id,omitempty"`
	Source    string    `json:"source,omitempty"`
	LoadedAt  time.Time `json:"loaded_at"`
	Products  int       `json:"products"`
	Brands    []string  `json:"brands"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	out := statusResponse{Brands: s.engine.ListBrands()}
	if c := s.engine.Catalog(); c != nil {
		out.Ready = true
		out.CatalogID = c.ID()
		out.Source = c.Source()
		out.LoadedAt = c.LoadedAt()
		out.Products = c.Len()
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.catalogPath == "" {
		s.respondError(w, http.StatusNotFound, "catalog reload not enabled")
		return
	}
	if err := s.engine.Reload(r.Context(), s.catalogPath); err != nil {
		s.logger.Error("catalog reload failed", zap.String("path", s.catalogPath), zap.Error(err))
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	c := s.engine.Catalog()
	s.respondJSON(w, http.StatusOK, healthResponse{Status: "reloaded", CatalogID: c.ID(), Products: c.Len()})
}

type errorBody struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorBody{Error: message})
}
