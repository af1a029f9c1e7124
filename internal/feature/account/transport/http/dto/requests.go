// Package dto holds the wire shapes of the account API.
package dto

// DeleteAccountReq is the body of DELETE /api/delete-account.
type DeleteAccountReq struct {
	Email string `json:"email" binding:"required"`
}
