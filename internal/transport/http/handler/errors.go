package handler

const (
	errInternalServer = "Internal server error"
	errUserNotFound   = "User not found"
	errLinkNotFound   = "Link not found"
	errInvalidLogin   = "Invalid email or password"
	errResetInvalid   = "Reset token is invalid or expired"
	errNotOwner       = "Unauthorized: You are not allowed to modify this link"
)
