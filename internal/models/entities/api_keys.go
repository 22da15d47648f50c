package entities

type ApiKey struct {
	ID     string `db:"id"`
	Status bool   `db:"status"`
	Label  string `db:"label"`
}
