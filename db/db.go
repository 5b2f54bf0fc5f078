package db

import (
	"context"

	"github.com/tunnelsnakes/sandlot/model"
)

type DB interface {
	GetPlayer(ctx context.Context, id int32) (*model.Player, error)
	GetPlayerByYahooKey(ctx context.Context, key string) (*model.Player, error)
	// Inserts the player when p.ID is 0 and sets p.ID, otherwise updates it.
	SavePlayer(ctx context.Context, p *model.Player) error
	ListPlayers(ctx context.Context) ([]model.Player, error)
	// Case-insensitive match on the full name.
	FindPlayersByName(ctx context.Context, name string) ([]model.Player, error)
	SearchPlayers(ctx context.Context, name string, pos model.Position, team *model.MLBTeam) ([]model.Player, error)
	UpdatePlayerECR(ctx context.Context, id int32, ecr int32) error
	// Writes the MLB identity, career stats and NA verdict of the player,
	// including the NA tag in the eligible positions.
	UpdatePlayerNA(ctx context.Context, p *model.Player) error

	AddRosterPlayer(ctx context.Context, r *model.RosterPlayer) error
	// Puts the player on the team, moving him if he is on another one. Returns
	// false when he was already there.
	UpsertRosterPlayer(ctx context.Context, playerID int32, teamKey string) (bool, error)
	GetRosterPlayer(ctx context.Context, id int32) (*model.RosterPlayer, error)
	// All roster players of one team, with their players, ordered by name.
	ListRoster(ctx context.Context, teamKey string) ([]model.RosterPlayer, error)
	// Every roster player in the league, with their players.
	ListRosterPlayers(ctx context.Context) ([]model.RosterPlayer, error)
	// Sets the keeper status after checking the player is still on teamKey, NA
	// eligibility and the team's keeper quota, all while holding locks on the
	// team's roster rows.
	UpdateKeeperStatus(ctx context.Context, id int32, teamKey string, status model.KeeperStatus) (*model.RosterPlayer, error)
	UpdateKeeperCost(ctx context.Context, id int32, round int, label string, source model.CostSource) error

	// Replaces every record of the season with the given ones.
	SaveKeeperRecords(ctx context.Context, season int, records []model.KeeperRecord) error
	ListKeeperRecords(ctx context.Context, season int) ([]model.KeeperRecord, error)

	GetDraftBoard(ctx context.Context) (*model.Board, error)
	SaveDraftBoard(ctx context.Context, b *model.Board) error
	// Stores the board that resulted from the trade along with the trade itself.
	SaveDraftTrade(ctx context.Context, b *model.Board, t *model.Trade, recordedBy string) error
}
