package jokes

import "fmt"

type (
	JokeNotFound struct {
		ID string
	}

	UserNotFound struct {
		Username string
	}

	UsernameTaken struct {
		Username string
	}
)

func (j JokeNotFound) Error() string {
	return fmt.Sprintf("joke %v not found", j.ID)
}

func (u UserNotFound) Error() string {
	return fmt.Sprintf("user %v not found", u.Username)
}

func (u UsernameTaken) Error() string {
	return fmt.Sprintf("user %v already exists", u.Username)
}
