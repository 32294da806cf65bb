package envelope

import (
	"strconv"

	"github.com/google/uuid"
)

// Resolve returns the transaction id of a raw message. A non-empty id is
// returned unchanged; otherwise a fresh one is minted and written into the
// message in place, becoming authoritative for the transaction from then on.
// Numeric ids from older producers are kept, stringified, rather than
// replaced.
func Resolve(fields map[string]any) string {
	switch v := fields["transactionId"].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		tx := strconv.FormatFloat(v, 'f', -1, 64)
		fields["transactionId"] = tx
		return tx
	}
	tx := mint()
	fields["transactionId"] = tx
	return tx
}

func mint() string {
	return uuid.NewString()
}
