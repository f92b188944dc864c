package api

import (
	"encoding/json"
	"net/http"
	"strconv"
)

func parseFloat(r *http.Request, key string) (float64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func parseUint(r *http.Request, key string) (uint64, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NewHTTPHandler serves GET /simulate?win_rate=&runs=&start_stars=&seed=
func NewHTTPHandler(svc *Service) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/simulate", func(w http.ResponseWriter, r *http.Request) {
		handleSimulate(svc, w, r)
	})
	return mux
}

func handleSimulate(svc *Service, w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, Result{Err: "method not allowed"})
		return
	}

	var req Request
	p, ok, msg := parseFloat(r, "win_rate")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, Result{Err: msg})
		return
	}
	if !ok {
		writeJSON(w, http.StatusBadRequest, Result{Err: "missing param win_rate"})
		return
	}
	req.WinRate = p

	runs, _, msg := parseInt(r, "runs")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, Result{Err: msg})
		return
	}
	req.Runs = runs

	start, hasStart, msg := parseInt(r, "start_stars")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, Result{Err: msg})
		return
	}
	if hasStart {
		req.StartStars = &start
	}

	seed, hasSeed, msg := parseUint(r, "seed")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, Result{Err: msg})
		return
	}
	if hasSeed {
		req.Seed = &seed
	}

	res, err := svc.Simulate(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		if isBadRequest(err) {
			code = http.StatusBadRequest
		}
		writeJSON(w, code, Result{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}
