package hardcover

import "time"

// Refresh intervals suggested to the host scheduler.
const (
	RefreshShort = 5 * time.Minute
	RefreshLong  = 30 * time.Minute
)

// RefreshHint suggests the next refresh interval from credential presence
// and whether the last listing produced results: retry soon when the
// credential or the data is missing, otherwise settle into the long
// cadence. The engine only reports this value; the host enforces it.
func (c *Client) RefreshHint(resultsPresent bool) time.Duration {
	if !c.Authenticated() || !resultsPresent {
		return RefreshShort
	}
	return RefreshLong
}
