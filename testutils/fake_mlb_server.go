package testutils

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/tunnelsnakes/sandlot/model"
)

//go:embed mlbdata
var mlbdata embed.FS

type FakeMLBServer struct {
	s *httptest.Server
}

func NewFakeMLBServer() *FakeMLBServer {
	r := chi.NewRouter()
	r.Route("/api/v1/people", func(r chi.Router) {
		r.Get("/search", peopleSearchHandler)
		r.Get("/{personID}", personHandler)
	})

	return &FakeMLBServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeMLBServer) Close() {
	f.s.Close()
}

func (f *FakeMLBServer) URL() string {
	return f.s.URL
}

// Searches are served from search_<folded_name>.json, a name without a file
// matches nobody.
func peopleSearchHandler(w http.ResponseWriter, r *http.Request) {
	name := strings.ReplaceAll(model.FoldName(r.URL.Query().Get("names")), " ", "_")
	file := fmt.Sprintf("search_%s.json", name)
	if _, err := mlbdata.ReadFile("mlbdata/" + file); err != nil {
		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"people":[]}`))
		return
	}
	serveMLBFile(w, file)
}

func personHandler(w http.ResponseWriter, r *http.Request) {
	file := fmt.Sprintf("person_%s.json", chi.URLParam(r, "personID"))
	if _, err := mlbdata.ReadFile("mlbdata/" + file); err != nil {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"messageNumber":10,"message":"Object not found"}`))
		return
	}
	serveMLBFile(w, file)
}

func serveMLBFile(w http.ResponseWriter, name string) {
	b, err := mlbdata.ReadFile(fmt.Sprintf("mlbdata/%s", name))
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("error reading mlb test data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
