package dto

// ApproveUserReq represents the request body for /auth/admin/approve-user.
type ApproveUserReq struct {
	UserID string `json:"user_id" binding:"required"`
}
