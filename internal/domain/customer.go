package domain

type Customer struct {
	ID        uint64  `json:"id" gorm:"primaryKey;autoIncrement"`
	FirstName string  `json:"firstName" gorm:"not null"`
	LastName  string  `json:"lastName" gorm:"not null"`
	Email     string  `json:"email" gorm:"not null;size:255"`
	Telephone string  `json:"telephone" gorm:"not null"`
	City      *string `json:"city"`
	Country   *string `json:"country"`
}

func (c *Customer) Validate() error {
	verr := &ValidationError{EntityName: CustomerEntity}
	if c.FirstName == "" {
		verr.Add("firstName", "must not be blank")
	}
	if c.LastName == "" {
		verr.Add("lastName", "must not be blank")
	}
	if c.Email == "" {
		verr.Add("email", "must not be blank")
	}
	if c.Telephone == "" {
		verr.Add("telephone", "must not be blank")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (c *Customer) Clone() *Customer {
	cp := *c
	if c.City != nil {
		city := *c.City
		cp.City = &city
	}
	if c.Country != nil {
		country := *c.Country
		cp.Country = &country
	}
	return &cp
}
