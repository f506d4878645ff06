package people

// UserListResponse mirrors the listing payload.
type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Skip  int    `json:"skip"`
	Limit int    `json:"limit"`
}

// User is a person record as received from the API. Fields the roster does not
// use are left out and ignored by the decoder.
type User struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	BirthDate string  `json:"birthDate"`
	Address   Address `json:"address"`
}

// Address carries the postal fields of a user.
type Address struct {
	City string `json:"city"`
}
