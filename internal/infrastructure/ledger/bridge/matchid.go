package bridge

import "strconv"

// Match ids travel as decimal strings like every other numeric field on the
// wire, but the contract's match counter fits uint64.
func formatMatchID(matchID uint64) string {
	return strconv.FormatUint(matchID, 10)
}

func parseMatchID(value string) (uint64, error) {
	return strconv.ParseUint(value, 10, 64)
}
