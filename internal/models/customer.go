package models

import "golang.org/x/crypto/bcrypt"

// Customer is a buyer account. Password and RememberToken are credentials and
// never leave the service, neither in JSON nor in audit payloads.
type Customer struct {
	Base
	Email         string  `gorm:"uniqueIndex;not null" json:"email"`
	Name          string  `gorm:"not null" json:"name"`
	Password      string  `gorm:"not null" json:"-"`
	RememberToken string  `gorm:"size:100" json:"-"`
	Orders        []Order `gorm:"foreignKey:CustomerID" json:"orders,omitempty"`
}

// SetPassword stores the bcrypt hash of plain.
func (c *Customer) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	c.Password = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (c *Customer) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(plain)) == nil
}
