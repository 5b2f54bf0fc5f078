package testutils

import (
	"embed"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// The draft being seeded from is last season's, the rosters are this season's.
const (
	YahooPrevLeagueKey = "458.l.5221"
	YahooTeamKey       = "469.l.24701.t.3"

	yahooLeagueKey = "469.l.24701"
)

//go:embed yahoodata
var yahoodata embed.FS

type FakeYahooServer struct {
	s *httptest.Server
}

func NewFakeYahooServer() *FakeYahooServer {
	r := chi.NewRouter()
	// https://fantasysports.yahooapis.com/fantasy/v2/league/458.l.5221/draft_results
	r.Route("/fantasy/v2", func(r chi.Router) {
		r.Get("/league/{leagueKey}/draft_results", draftResultsHandler)
		r.Get("/team/{teamKey}/roster/players", teamRosterHandler)
	})

	return &FakeYahooServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

func (f *FakeYahooServer) URL() string {
	return f.s.URL
}

func draftResultsHandler(w http.ResponseWriter, r *http.Request) {
	leagueKey := chi.URLParam(r, "leagueKey")
	if leagueKey == YahooPrevLeagueKey {
		serveYahooFile(w, "draft_results.xml")
		return
	}

	w.WriteHeader(http.StatusForbidden)
	w.Write([]byte(forbiddenMessage))
}

func teamRosterHandler(w http.ResponseWriter, r *http.Request) {
	teamKey := chi.URLParam(r, "teamKey")
	if teamKey == YahooTeamKey {
		serveYahooFile(w, "team_roster.xml")
		return
	}
	if strings.HasPrefix(teamKey, yahooLeagueKey+".t.") {
		w.Header().Add("Content-Type", "text/xml")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, emptyRosterTemplate, teamKey, teamKey)
		return
	}

	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("error"))
}

func serveYahooFile(w http.ResponseWriter, name string) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		log.Error().Err(err).Str("file", name).Msg("error reading yahoo test data")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

const forbiddenMessage = `<?xml version="1.0" encoding="UTF-8"?>
<error xml:lang="en-us" yahoo:uri="http://fantasysports.yahooapis.com/fantasy/v2/league/mlb.l.149975" 
xmlns:yahoo="http://www.yahooapis.com/v1/base.rng" xmlns="http://www.yahooapis.com/v1/base.rng">
    <description>You are not allowed to view this page because you are not in this league.</description>
    <detail/>
</error>`

const emptyRosterTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<fantasy_content xml:lang="en-US" yahoo:uri="http://fantasysports.yahooapis.com/fantasy/v2/team/%s/roster/players" xmlns:yahoo="http://www.yahooapis.com/v1/base.rng" xmlns="http://fantasysports.yahooapis.com/fantasy/v2/base.rng">
 <team>
  <team_key>%s</team_key>
  <roster>
   <coverage_type>date</coverage_type>
   <players count="0"/>
  </roster>
 </team>
</fantasy_content>`
