package model

import "testing"

func TestNormalizeKeeperName(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"plain":            {input: "Julio Rodríguez", want: "Julio Rodríguez"},
		"trim":             {input: "  Corbin Carroll ", want: "Corbin Carroll"},
		"collapse spaces":  {input: "Gunnar   Henderson", want: "Gunnar Henderson"},
		"jr no period":     {input: "Bobby Witt Jr", want: "Bobby Witt Jr."},
		"jr lower":         {input: "Bobby Witt jr.", want: "Bobby Witt Jr."},
		"jr upper":         {input: "Ronald Acuña JR.", want: "Ronald Acuña Jr."},
		"jr comma":         {input: "Vladimir Guerrero, Jr.", want: "Vladimir Guerrero Jr."},
		"jr canonical":     {input: "Fernando Tatis Jr.", want: "Fernando Tatis Jr."},
		"batter suffix":    {input: "Shohei Ohtani, Batter", want: "Shohei Ohtani"},
		"pitcher suffix":   {input: "Shohei Ohtani, Pitcher", want: "Shohei Ohtani"},
		"batter paren":     {input: "Shohei Ohtani (Batter)", want: "Shohei Ohtani"},
		"pitcher paren":    {input: "Shohei Ohtani (Pitcher)", want: "Shohei Ohtani"},
		"name ending jr":   {input: "Junior Caminero", want: "Junior Caminero"},
		"two way with jr":  {input: "Some Guy Jr., Batter", want: "Some Guy Jr."},
		"whitespace in jr": {input: "Bobby  Witt   Jr.", want: "Bobby Witt Jr."},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := NormalizeKeeperName(tc.input)
			if got != tc.want {
				t.Errorf("expected '%s', got '%s'", tc.want, got)
			}
		})
	}
}

func TestFoldName(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"accents":    {input: "Julio Rodríguez", want: "julio rodriguez"},
		"tilde":      {input: "Ronald Acuña Jr.", want: "ronald acuna jr"},
		"initials":   {input: "J.T. Realmuto", want: "jt realmuto"},
		"apostrophe": {input: "Tyler O'Neill", want: "tyler oneill"},
		"hyphen":     {input: "Isiah Kiner-Falefa", want: "isiah kiner falefa"},
		"spacing":    {input: "  Pete   Alonso ", want: "pete alonso"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := FoldName(tc.input)
			if got != tc.want {
				t.Errorf("expected '%s', got '%s'", tc.want, got)
			}
		})
	}
}

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		10:  "10th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		23:  "23rd",
		24:  "24th",
		111: "111th",
	}

	for n, want := range tests {
		if got := Ordinal(n); got != want {
			t.Errorf("Ordinal(%d): expected %s, got %s", n, want, got)
		}
	}
}

func TestECRRound(t *testing.T) {
	tests := map[string]struct {
		ecr  int32
		want int
	}{
		"first pick":   {ecr: 1, want: 1},
		"end of 1st":   {ecr: 12, want: 1},
		"start of 2nd": {ecr: 13, want: 2},
		"ecr 25":       {ecr: 25, want: 3},
		"last round":   {ecr: 276, want: 23},
		"past cap":     {ecr: 277, want: 23},
		"way past cap": {ecr: 900, want: 23},
		"unranked":     {ecr: 0, want: 23},
		"negative":     {ecr: -4, want: 23},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ECRRound(tc.ecr); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestKeeperCost(t *testing.T) {
	tests := map[string]struct {
		record    KeeperRecord
		ecr       int32
		wantLabel string
		wantRound int
	}{
		"third year to fourth": {
			record:    KeeperRecord{PlayerName: "Corbin Carroll", YearsKept: 3, Round: 2},
			ecr:       25,
			wantLabel: "4th yr keeper — ECR",
			wantRound: 3,
		},
		"first year keeper": {
			record:    KeeperRecord{PlayerName: "Jackson Chourio", YearsKept: 1, Round: 9},
			ecr:       40,
			wantLabel: "2nd yr keeper — ECR",
			wantRound: 4,
		},
		"no ecr": {
			record:    KeeperRecord{PlayerName: "Deep Sleeper", YearsKept: 5, Round: 20},
			ecr:       0,
			wantLabel: "6th yr keeper — ECR",
			wantRound: 23,
		},
		"no ecr first year": {
			record:    KeeperRecord{PlayerName: "Deep Sleeper", YearsKept: 1, Round: 20},
			ecr:       0,
			wantLabel: "2nd yr keeper — ECR",
			wantRound: 23,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			label, round := KeeperCost(&tc.record, tc.ecr)
			if label != tc.wantLabel {
				t.Errorf("expected label '%s', got '%s'", tc.wantLabel, label)
			}
			if round != tc.wantRound {
				t.Errorf("expected round %d, got %d", tc.wantRound, round)
			}
		})
	}
}

func TestCostLabels(t *testing.T) {
	if got := DraftedCostLabel(7); got != "Drafted Rd 7" {
		t.Errorf("unexpected drafted label: %s", got)
	}
	if got := FACostLabel(); got != "FA — Rd 23" {
		t.Errorf("unexpected fa label: %s", got)
	}
}

func TestParseCostSource(t *testing.T) {
	for _, s := range []string{"", "draft", "fa", "keeper-ecr", "manual"} {
		if _, err := ParseCostSource(s); err != nil {
			t.Errorf("unexpected error for '%s': %v", s, err)
		}
	}
	if _, err := ParseCostSource("yahoo-api-analysis"); err == nil {
		t.Errorf("expected an error for an unknown source")
	}
}
