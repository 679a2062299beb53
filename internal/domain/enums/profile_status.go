package enums

type ProfileStatus string

const (
	ProfileStatusSearching   ProfileStatus = "search"
	ProfileStatusBusy        ProfileStatus = "busy"
	ProfileStatusMarried     ProfileStatus = "married"
	ProfileStatusComplicated ProfileStatus = "complicated"
)

func (s ProfileStatus) Valid() bool {
	switch s {
	case ProfileStatusSearching, ProfileStatusBusy, ProfileStatusMarried, ProfileStatusComplicated:
		return true
	default:
		return false
	}
}
