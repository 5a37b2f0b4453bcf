package domain

// Profile is the user card shown by the profile command.
// Counts are zero when upstream omits them.
type Profile struct {
	Login       string
	Name        string
	Bio         string
	AvatarURL   string
	PublicRepos int
	Followers   int
	Following   int
}

// DisplayName falls back to the login when no name is set
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}
