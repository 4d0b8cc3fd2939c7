package customer

type Customer struct {
	Id    int    `db:"id"`
	Name  string `db:"name"`
	Phone string `db:"phone"`
}
