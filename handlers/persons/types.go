package persons

// Error messages constants
const (
	ErrPersonNotFound     = "Person not found"
	ErrNoPermissionView   = "User does not have permission to view people"
	ErrNoPermissionChange = "User does not have permission to change people"
	ErrFetchingPersons    = "Failed to fetch people"
	ErrFailedUpdatePerson = "Failed to update person"
)

// ProfileUpdateRequest updates the caller's own profile
type ProfileUpdateRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email" binding:"omitempty,email"`
}
