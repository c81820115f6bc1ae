package domain

// Account is one configured check-in identity. Accounts are loaded once at
// process start and never mutated or written back.
type Account struct {
	Name    string
	UID     string
	Cookies map[string]string
}

// HasCredentials reports whether the account carries a usable cookie bundle.
func (a Account) HasCredentials() bool {
	return len(a.Cookies) > 0
}
