package model

type unset struct{}

// Unset marks a field for removal in an update map. Relational stores write
// NULL, document stores drop the key.
var Unset = unset{} //nolint:gochecknoglobals

func IsUnset(value any) bool {
	_, ok := value.(unset)

	return ok
}
