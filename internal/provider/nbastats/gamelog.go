package nbastats

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/albapepper/nba-analytics/internal/provider"
)

// SeasonTypeRegular is the only season type the API serves.
const SeasonTypeRegular = "Regular Season"

// PlayerGameLog fetches one player's game log for a season. Rows come back
// most recent game first, exactly as the provider orders them.
func (c *Client) PlayerGameLog(ctx context.Context, playerID int, season string) ([]provider.RawGameRecord, error) {
	params := url.Values{
		"PlayerID":   {strconv.Itoa(playerID)},
		"Season":     {season},
		"SeasonType": {SeasonTypeRegular},
		"LeagueID":   {"00"},
	}

	resp, err := c.get(ctx, "/playergamelog", params)
	if err != nil {
		return nil, fmt.Errorf("fetch game log for player %d: %w", playerID, err)
	}

	set, err := resp.table("PlayerGameLog")
	if err != nil {
		return nil, err
	}

	rows := set.rows()
	records := make([]provider.RawGameRecord, len(rows))
	for i, row := range rows {
		records[i] = provider.RawGameRecord(row)
	}
	return records, nil
}
