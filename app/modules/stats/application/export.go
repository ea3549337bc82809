package statsservice

import (
	"fmt"
	"io"

	gamedomain "github.com/Black-And-White-Club/euchre-bot/app/modules/game/domain"
	"github.com/xuri/excelize/v2"
)

const (
	handsSheet = "Hands"
	callsSheet = "Calls"
)

// handResult describes a hand the way the scorekeeper reads it.
func handResult(h *gamedomain.Hand) string {
	net := netPoints(h)
	if h.IsEuchre {
		return fmt.Sprintf("Euchred: lost %d, other team +%d", -net, h.OtherTeamPoints)
	}
	return fmt.Sprintf("%+d", net)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// writeWorkbook writes the hand log and the call breakdown of one game.
func writeWorkbook(game *gamedomain.Game, hands []*gamedomain.Hand, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", handsSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := []any{"Hand", "Caller", "Team", "Called", "Result", game.Team1Name, game.Team2Name, "Notes"}
	if err := writeRow(f, handsSheet, 1, header); err != nil {
		return err
	}

	roster := game.Roster()
	for i, h := range hands {
		row := []any{
			h.HandNumber,
			h.CallerName,
			roster.TeamName(h.CallerTeam),
			h.CallValue,
			handResult(h),
			h.Team1Cumulative,
			h.Team2Cumulative,
			h.Notes,
		}
		if err := writeRow(f, handsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(callsSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	if err := writeRow(f, callsSheet, 1, []any{"Call", "Count", "Total Points", "Avg Points", "Euchres", "Euchre Rate"}); err != nil {
		return err
	}
	for i, c := range breakdownCalls(hands) {
		row := []any{c.Call, c.Count, c.TotalPoints, c.AvgPoints, c.Euchres, c.EuchreRate}
		if err := writeRow(f, callsSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
