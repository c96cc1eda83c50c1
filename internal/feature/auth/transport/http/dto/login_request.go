package dto

// LoginReq represents the request body for the /auth/login endpoint.
// Identifier is either an email address or a phone number.
type LoginReq struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}
