package domain

// Approver maps one approval level to exactly one user identity. Static
// reference data; read-only to this service.
type Approver struct {
	Level       int    `json:"level"`
	UserID      string `json:"userID"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}
