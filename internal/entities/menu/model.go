package menu

import "github.com/iteranya/restaurant-pos/internal/utils"

// MenuItem is a sellable dish. Items are added and deleted, never edited.
type MenuItem struct {
	Id    int         `db:"id"`
	Name  string      `db:"name"`
	Price utils.Money `db:"price"`
}
