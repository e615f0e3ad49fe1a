package dto

// Identity is what an authentication strategy learns about the caller.
type Identity struct {
	UserID          string `json:"user_id" validate:"required"`
	Email           string `json:"email" validate:"omitempty,email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"picture" validate:"omitempty,url"`
}

// ProfileUpdate represents the profile fields a user may change.
type ProfileUpdate struct {
	FirstName       *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName        *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty" validate:"omitempty,url"`
}
