package auth

// Credentials is the login or signup form input
type Credentials struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// AuthData is the Login query payload
type AuthData struct {
	UserID          string `json:"userId"`
	Token           string `json:"token"`
	TokenExpiration int    `json:"tokenExpiration"`
}

// User is the CreateUser mutation payload
type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}
