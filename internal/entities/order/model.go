package order

import (
	"time"

	"github.com/iteranya/restaurant-pos/internal/utils"
)

// Order is a line of sale. ItemName and Total are copied from the menu when the
// order is placed, so later menu changes never rewrite history.
type Order struct {
	Id       int         `db:"id"`
	ItemName string      `db:"item_name"`
	Quantity int         `db:"quantity"`
	Total    utils.Money `db:"total"`
	Date     time.Time   `db:"placed_on"`
}
