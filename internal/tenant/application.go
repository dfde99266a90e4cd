package tenant

import "math"

// DefaultCharacters is the identifier alphabet used when an application does
// not configure its own: letters, digits, and URL-safe punctuation.
const DefaultCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789$-_.+!*'(),"

// DefaultMaxLength is the identifier length used when an application does not
// configure its own.
const DefaultMaxLength = 5

// Application is a configured tenant. Applications are loaded once at startup
// and are immutable afterwards; the ID doubles as the key-namespace prefix in
// the backing store.
type Application struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Key        string `json:"key"`
	URL        string `json:"url"`
	Characters string `json:"characters,omitempty"`
	MaxLength  int    `json:"maxLength,omitempty"`
}

// Keyspace returns the number of distinct identifiers the application's
// alphabet and length can produce. Operators are expected to size this far
// above the expected record count; collision retries degrade otherwise.
func (a *Application) Keyspace() float64 {
	return math.Pow(float64(len(a.Characters)), float64(a.MaxLength))
}
