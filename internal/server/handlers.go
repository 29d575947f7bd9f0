package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"TickerBoard/internal/board"
	"TickerBoard/internal/calculator"
	"TickerBoard/internal/model"
)

type loginView struct {
	Username string
	Message  string
}

type portfolioView struct {
	Ticker   string
	Message  string
	Canvas   string
	ChartURL string
	Width    int
	Height   int
	Summary  *calculator.Summary
}

func (s *Server) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login.html", loginView{})
}

// submitLogin handles the login form. Success redirects with 303 so the
// browser follows with a GET.
func (s *Server) submitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "login.html", loginView{Message: "Invalid form submission."})
		return
	}
	username := r.PostForm.Get("username")
	_, err := s.deps.Gate.Confirm(username, r.PostForm.Get("password"))
	if err != nil {
		var verr *model.ValidationError
		msg := err.Error()
		if errors.As(err, &verr) {
			msg = verr.Message
		}
		s.render(w, r, http.StatusBadRequest, "login.html", loginView{Username: username, Message: msg})
		return
	}
	http.Redirect(w, r, s.deps.Gate.Path(), http.StatusSeeOther)
}

func (s *Server) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, "Invalid request body")
		return
	}
	dest, err := s.deps.Gate.Confirm(req.Username, req.Password)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			Error(w, r, http.StatusBadRequest, ErrCodeValidation, verr.Message,
				FieldError{Field: verr.Field, Message: verr.Message})
			return
		}
		Error(w, r, http.StatusInternalServerError, ErrCodeInternalServer, err.Error())
		return
	}
	Success(w, r, map[string]string{"destination": dest})
}

func (s *Server) portfolioPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "portfolio.html", s.portfolio(""))
}

// search runs the stock chart controller and re-renders the page. Failures
// keep whatever chart is already on the canvas and show the message in a dialog.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("stock-ticker")
	res, err := s.deps.Board.Search(r.Context(), raw)

	view := s.portfolio(raw)
	switch {
	case errors.Is(err, model.ErrValidation):
		var verr *model.ValidationError
		errors.As(err, &verr)
		view.Message = verr.Message
		s.render(w, r, http.StatusBadRequest, "portfolio.html", view)
		return
	case errors.Is(err, model.ErrFetchFailed):
		view.Message = board.MsgFetchFailed
		s.render(w, r, http.StatusBadGateway, "portfolio.html", view)
		return
	case err != nil:
		log.Error().Err(err).Str("ticker", raw).Msg("search failed")
		view.Message = err.Error()
		s.render(w, r, http.StatusInternalServerError, "portfolio.html", view)
		return
	}

	if res.Superseded {
		// a newer search owns the canvas; describe that chart instead
		view.Ticker = s.deps.Board.LastTicker()
		s.render(w, r, http.StatusOK, "portfolio.html", view)
		return
	}
	view.Ticker = res.Series.Symbol()
	if sum, err := calculator.Summarize(res.Series); err == nil {
		view.Summary = sum
	}
	s.render(w, r, http.StatusOK, "portfolio.html", view)
}

// apiSeries returns the fetched series without touching the canvas.
func (s *Server) apiSeries(w http.ResponseWriter, r *http.Request) {
	q := model.NewTickerQuery(chi.URLParam(r, "ticker"))
	if q.IsEmpty() {
		Error(w, r, http.StatusBadRequest, ErrCodeValidation, board.MsgEmptyTicker,
			FieldError{Field: "ticker", Message: board.MsgEmptyTicker})
		return
	}
	series, err := s.deps.Fetcher.FetchTimeSeries(r.Context(), q.Symbol)
	if err != nil {
		log.Error().Err(err).Str("ticker", q.Symbol).Msg("error fetching stock data")
		Error(w, r, http.StatusBadGateway, ErrCodeExternalAPIError, err.Error())
		return
	}
	Success(w, r, series)
}

// chartImage serves the live chart. Optional w and h query parameters redraw
// it at that size first.
func (s *Server) chartImage(w http.ResponseWriter, r *http.Request) {
	renderer := s.deps.Board.Renderer
	inst := renderer.Current()

	if qw, qh := r.URL.Query().Get("w"), r.URL.Query().Get("h"); inst != nil && (qw != "" || qh != "") {
		width, errW := atoiOr(qw, inst.Width)
		height, errH := atoiOr(qh, inst.Height)
		if errW != nil || errH != nil {
			Error(w, r, http.StatusBadRequest, ErrCodeInvalidParameter, "w and h must be integers")
			return
		}
		resized, err := renderer.Resize(width, height)
		if err != nil {
			Error(w, r, http.StatusInternalServerError, ErrCodeInternalServer, err.Error())
			return
		}
		inst = resized
	}

	var data []byte
	if inst != nil {
		data = inst.PNG()
	}
	if len(data) == 0 {
		Error(w, r, http.StatusNotFound, ErrCodeNotFound, "no chart rendered")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Chart-Generation", strconv.FormatUint(inst.Generation, 10))
	w.Write(data)
}

func (s *Server) portfolio(ticker string) portfolioView {
	renderer := s.deps.Board.Renderer
	view := portfolioView{Ticker: ticker, Canvas: renderer.Canvas()}
	view.Width, view.Height = renderer.Size()
	if inst := renderer.Current(); inst != nil {
		view.ChartURL = fmt.Sprintf("%s?gen=%d", s.chartPath(), inst.Generation)
		view.Width, view.Height = inst.Width, inst.Height
	}
	return view
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("request_id", GetRequestID(r.Context())).Str("template", name).Msg("render page")
	}
}

func atoiOr(v string, fallback int) (int, error) {
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
