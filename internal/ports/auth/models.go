package auth

// Claims es la identidad verificada del requester.
// UserID es obligatorio; el resto depende del proveedor.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}
