package domain

import "errors"

var ErrAccountNotFound = errors.New("account not found")

// Account is the part of a linked Mastodon account the read side needs.
type Account struct {
	ID       string
	Timezone string
}
