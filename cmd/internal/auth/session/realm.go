package session

// Realm is an isolated principal namespace. Realms share mechanics but
// never share secrets or session keys.
type Realm string

const (
	// RealmHuman is the namespace for human principals.
	RealmHuman Realm = "human"
	// RealmGhost is the namespace for ghost principals.
	RealmGhost Realm = "ghost"
)

// SessionKey returns the store key for a principal's session record.
// The layout is "<realm>_session:<principalID>".
func (r Realm) SessionKey(principalID string) string {
	return string(r) + "_session:" + principalID
}

// Valid reports whether r is one of the known realms.
func (r Realm) Valid() bool {
	return r == RealmHuman || r == RealmGhost
}
