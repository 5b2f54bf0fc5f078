package internal

type PeopleResponse struct {
	People []Person `json:"people"`
}

type Person struct {
	ID              int64     `json:"id"`
	FullName        string    `json:"fullName"`
	MLBDebutDate    string    `json:"mlbDebutDate"`
	Active          bool      `json:"active"`
	CurrentTeam     *Team     `json:"currentTeam"`
	PrimaryPosition *Position `json:"primaryPosition"`
	Stats           []Stats   `json:"stats"`
}

type Team struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type Position struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

type Stats struct {
	Type   DisplayName `json:"type"`
	Group  DisplayName `json:"group"`
	Splits []Split     `json:"splits"`
}

type DisplayName struct {
	DisplayName string `json:"displayName"`
}

type Split struct {
	Stat Stat `json:"stat"`
}

type Stat struct {
	AtBats         int32  `json:"atBats"`
	InningsPitched string `json:"inningsPitched"`
}
