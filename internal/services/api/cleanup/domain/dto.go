// Package domain holds DTOs for cleanup http and service contracts
package domain

// SetActionInput overrides the pending action for one phone entry
type SetActionInput struct {
	ContactID string `json:"contact_id" validate:"required,min=1" example:"1e2c5b0a"`
	PhoneID   string `json:"phone_id" validate:"required,min=1" example:"9f8d7c6b"`
	Action    string `json:"action" validate:"required,oneof=skip add_prefix remove_spaces delete" example:"add_prefix"`
}

// StateView is the session snapshot exposed over the wire
type StateView struct {
	Phase     string `json:"phase" example:"ready"`
	Contacts  int    `json:"contacts" example:"42"`
	Phones    int    `json:"phones" example:"57"`
	LastError string `json:"last_error,omitempty" example:"contact store list failed"`
}

// PhoneView is one phone entry of a loaded contact
type PhoneView struct {
	ID     string `json:"id"`
	Raw    string `json:"raw" example:"912345678"`
	Label  string `json:"label,omitempty" example:"CELL"`
	Action string `json:"action" example:"add_prefix"`
	Reason string `json:"reason,omitempty" example:"invalid length"`
}

// ContactView is a loaded contact with its pending edits
type ContactView struct {
	ID           string      `json:"id"`
	DisplayName  string      `json:"display_name" example:"Alice"`
	Phones       []PhoneView `json:"phones"`
	NeedsAction  bool        `json:"needs_action" example:"true"`
	PendingEdits int         `json:"pending_edits" example:"2"`
}

// ApplyResultView counts the outcome of one apply run
type ApplyResultView struct {
	Updated  int `json:"updated" example:"3"`
	Prefixed int `json:"prefixed" example:"2"`
	Deleted  int `json:"deleted" example:"1"`
	Failed   int `json:"failed" example:"0"`
}
