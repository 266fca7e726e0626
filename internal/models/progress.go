package models

// ProgressRecord holds the counters persisted under progress_<email>
type ProgressRecord struct {
	StoriesRead int `json:"storiesRead"`
	GamesPlayed int `json:"gamesPlayed"`
	TotalScore  int `json:"totalScore"`
}

// ProgressKey returns the storage key of a user's progress record
func ProgressKey(email string) string {
	return "progress_" + email
}

// Storage keys used inside every visitor namespace
const (
	UsersKey       = "nurseryUsers"
	CurrentUserKey = "currentUser"
)
