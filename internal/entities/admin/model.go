package admin

import "github.com/iteranya/restaurant-pos/internal/utils"

// Admin is the single operator credential.
type Admin struct {
	Id       int    `db:"id"`
	Username string `db:"username"`
	Hash     string `db:"hash"`
}

// SetPassword hashes the raw password using bcrypt and updates the Hash field.
func (a *Admin) SetPassword(rawPassword string) error {
	hash, err := utils.HashPassword(rawPassword)
	if err != nil {
		return err
	}
	a.Hash = hash
	return nil
}

// CheckPassword compares the provided raw password with the stored hash.
func (a *Admin) CheckPassword(rawPassword string) bool {
	return utils.CheckPassword(rawPassword, a.Hash)
}
