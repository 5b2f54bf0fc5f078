package model

import "time"

// MLBPerson is a player as known by the MLB Stats API.
type MLBPerson struct {
	ID              int64
	FullName        string
	Team            *MLBTeam
	PrimaryPosition Position
	DebutDate       time.Time // Zero if he hasn't debuted
}

type CareerStats struct {
	AtBats int32
	// Innings in box score notation, 45.2 is 45 and two thirds.
	InningsPitched float64
}
