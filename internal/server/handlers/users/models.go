package users

// RegisterRequest used to parse registration body params
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=4,max=12"`
	Email    string `json:"email" binding:"required,email,max=99"`
	Password string `json:"password" binding:"required,min=8,max=16"`
}

// RegisterResponse returns assigned user id
type RegisterResponse struct {
	ID int64 `json:"id"`
}

// LoginRequest used to parse login body params
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries issued key public id and signed bearer token
type LoginResponse struct {
	PublicID string `json:"public_id"`
	Token    string `json:"token"`
}
