package services

// PresenceProvider reports whether a member is online. Real presence
// tracking is out of scope; the wired implementation is a deterministic
// stub, and tests inject fixed values.
type PresenceProvider interface {
	IsOnline(email string) bool
}

// StaticPresence answers the same for every member.
type StaticPresence struct {
	Online bool
}

func (p StaticPresence) IsOnline(string) bool { return p.Online }
