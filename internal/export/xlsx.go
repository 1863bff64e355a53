// Package export writes league standings and history to spreadsheets.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/platleague/internal/model"
)

// Sheet names.
const (
	SheetLeaderboard = "Leaderboard"
	SheetGames       = "Games"
)

var (
	leaderboardHeader = []string{"Rank", "Player", "Points", "Games"}
	gamesHeader       = []string{"Date", "Player", "Game", "Hours", "Points", "Category", "Link"}
)

// WriteXLSX saves the leaderboard and the game history as two sheets.
// Game rows show player names when known and ids otherwise.
func WriteXLSX(path string, board []model.LeaderboardEntry, games []model.GameRecord) error {
	f := xlsx.NewFile()

	lb, err := f.AddSheet(SheetLeaderboard)
	if err != nil {
		return eris.Wrap(err, "xlsx: add leaderboard sheet")
	}
	addHeader(lb, leaderboardHeader)
	names := make(map[string]string, len(board))
	for i, e := range board {
		names[e.ID] = e.Name
		row := lb.AddRow()
		row.AddCell().SetInt(i + 1)
		row.AddCell().SetString(e.Name)
		row.AddCell().SetInt(e.TotalPoints)
		row.AddCell().SetInt(e.Games)
	}

	gs, err := f.AddSheet(SheetGames)
	if err != nil {
		return eris.Wrap(err, "xlsx: add games sheet")
	}
	addHeader(gs, gamesHeader)
	for _, g := range games {
		player := g.PlayerID
		if name, ok := names[g.PlayerID]; ok {
			player = name
		}
		row := gs.AddRow()
		row.AddCell().SetString(g.CreatedAt.Format("2006-01-02"))
		row.AddCell().SetString(player)
		row.AddCell().SetString(g.GameName)
		row.AddCell().SetFloat(g.Hours)
		row.AddCell().SetInt(g.Points)
		row.AddCell().SetString(g.Category)
		row.AddCell().SetString(g.HLTBLink)
	}

	return eris.Wrap(f.Save(path), "xlsx: save")
}

func addHeader(sheet *xlsx.Sheet, cols []string) {
	row := sheet.AddRow()
	for _, c := range cols {
		row.AddCell().SetString(c)
	}
}

// ReadSheet returns every row of the named sheet as strings.
func ReadSheet(path, name string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	sheet, ok := f.Sheet[name]
	if !ok {
		return nil, eris.Errorf("xlsx: sheet %q not found", name)
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}
