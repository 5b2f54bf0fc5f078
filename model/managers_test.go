package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultDirectory(t *testing.T) {
	d, err := DefaultDirectory()
	if err != nil {
		t.Fatalf("error loading default directory: %v", err)
	}

	if d.League() != "469.l.24701" || d.Season() != 2026 {
		t.Errorf("unexpected league: %s %d", d.League(), d.Season())
	}

	want := []string{"Pudge", "Nick", "Web", "Tom", "Tyler", "Thomas", "Chris", "Alex", "Greasy", "Bob", "Mike", "Sean"}
	if !reflect.DeepEqual(want, d.DraftOrder()) {
		t.Errorf("unexpected draft order: %v", d.DraftOrder())
	}

	keys := map[string]string{
		"469.l.24701.t.1":  "Chris",
		"469.l.24701.t.2":  "Alex",
		"469.l.24701.t.3":  "Pudge",
		"469.l.24701.t.4":  "Sean",
		"469.l.24701.t.5":  "Tom",
		"469.l.24701.t.6":  "Greasy",
		"469.l.24701.t.7":  "Web",
		"469.l.24701.t.8":  "Nick",
		"469.l.24701.t.9":  "Bob",
		"469.l.24701.t.10": "Mike",
		"469.l.24701.t.11": "Thomas",
		"469.l.24701.t.12": "Tyler",
	}
	for key, name := range keys {
		m, found := d.ByTeamKey(key)
		if !found || m.DisplayName != name {
			t.Errorf("team key %s should belong to %s", key, name)
		}
	}

	if c := d.Commissioner(); c == nil || !c.IsCommissioner() {
		t.Errorf("expected a commissioner")
	}
	if len(d.All()) != NumTeams {
		t.Errorf("expected %d managers", NumTeams)
	}
}

func TestDirectoryLookups(t *testing.T) {
	d, err := DefaultDirectory()
	if err != nil {
		t.Fatalf("error loading default directory: %v", err)
	}

	tests := map[string]struct {
		lookup func() (*Manager, bool)
		want   string
	}{
		"slug":          {lookup: func() (*Manager, bool) { return d.BySlug("greasy") }, want: "Greasy"},
		"unknown slug":  {lookup: func() (*Manager, bool) { return d.BySlug("steve") }},
		"email":         {lookup: func() (*Manager, bool) { return d.ByEmail("bob@thesandlot.example") }, want: "Bob"},
		"email case":    {lookup: func() (*Manager, bool) { return d.ByEmail("  Bob@TheSandlot.Example ") }, want: "Bob"},
		"unknown email": {lookup: func() (*Manager, bool) { return d.ByEmail("bob@example.com") }},
		"position":      {lookup: func() (*Manager, bool) { return d.ByDraftPosition(12) }, want: "Sean"},
		"bad position":  {lookup: func() (*Manager, bool) { return d.ByDraftPosition(13) }},
		"name":          {lookup: func() (*Manager, bool) { return d.ByDisplayName(" tyler ") }, want: "Tyler"},
		"unknown name":  {lookup: func() (*Manager, bool) { return d.ByDisplayName("Smalls") }},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, found := tc.lookup()
			if tc.want == "" {
				if found {
					t.Errorf("expected no manager, got %s", m.DisplayName)
				}
				return
			}
			if !found || m.DisplayName != tc.want {
				t.Errorf("expected %s, got %v", tc.want, m)
			}
		})
	}
}

func leagueYAML(edit func(i int, fields map[string]string)) []byte {
	var sb strings.Builder
	sb.WriteString("league: \"469.l.1\"\nseason: 2026\nmanagers:\n")
	for i := 1; i <= NumTeams; i++ {
		fields := map[string]string{
			"displayName":   fmt.Sprintf("M%d", i),
			"teamSlug":      fmt.Sprintf("m%d", i),
			"role":          "owner",
			"draftPosition": fmt.Sprintf("%d", i),
			"yahooTeamKey":  fmt.Sprintf("\"469.l.1.t.%d\"", i),
			"email":         fmt.Sprintf("m%d@example.com", i),
		}
		if i == 1 {
			fields["role"] = "commissioner"
		}
		if edit != nil {
			edit(i, fields)
		}
		if len(fields) == 0 {
			continue
		}
		first := true
		for _, k := range []string{"displayName", "teamSlug", "role", "draftPosition", "yahooTeamKey", "email"} {
			prefix := "    "
			if first {
				prefix = "  - "
				first = false
			}
			sb.WriteString(fmt.Sprintf("%s%s: %s\n", prefix, k, fields[k]))
		}
	}
	return []byte(sb.String())
}

func TestLoadDirectoryValid(t *testing.T) {
	d, err := LoadDirectory(leagueYAML(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Commissioner().DisplayName != "M1" {
		t.Errorf("unexpected commissioner: %s", d.Commissioner().DisplayName)
	}
}

func TestLoadDirectoryErrors(t *testing.T) {
	tests := map[string]func(i int, fields map[string]string){
		"too few managers": func(i int, fields map[string]string) {
			if i == 12 {
				clear(fields)
			}
		},
		"repeated position": func(i int, fields map[string]string) {
			if i == 12 {
				fields["draftPosition"] = "1"
			}
		},
		"position out of range": func(i int, fields map[string]string) {
			if i == 12 {
				fields["draftPosition"] = "13"
			}
		},
		"repeated name ignoring case": func(i int, fields map[string]string) {
			if i == 12 {
				fields["displayName"] = "m1"
			}
		},
		"repeated slug": func(i int, fields map[string]string) {
			if i == 12 {
				fields["teamSlug"] = "m1"
			}
		},
		"repeated email ignoring case": func(i int, fields map[string]string) {
			if i == 12 {
				fields["email"] = "M1@Example.com"
			}
		},
		"repeated team key": func(i int, fields map[string]string) {
			if i == 12 {
				fields["yahooTeamKey"] = "\"469.l.1.t.1\""
			}
		},
		"bad team key": func(i int, fields map[string]string) {
			if i == 12 {
				fields["yahooTeamKey"] = "twelve"
			}
		},
		"no commissioner": func(i int, fields map[string]string) {
			fields["role"] = "owner"
		},
		"two commissioners": func(i int, fields map[string]string) {
			if i == 2 {
				fields["role"] = "commissioner"
			}
		},
		"unknown role": func(i int, fields map[string]string) {
			if i == 5 {
				fields["role"] = "ghost"
			}
		},
	}

	for name, edit := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadDirectory(leagueYAML(edit))
			var v *ValidationError
			if !errors.As(err, &v) {
				t.Errorf("expected a ValidationError, got %v", err)
			}
		})
	}

	if _, err := LoadDirectory([]byte("managers: [")); err == nil {
		t.Errorf("expected a parse error")
	}
}
