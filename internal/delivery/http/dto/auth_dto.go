package dto

// UserOutput represents user details in API responses
type UserOutput struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
}

// ProvidersOutput lists the social logins a user can choose from
type ProvidersOutput struct {
	Providers []string `json:"providers"`
}
