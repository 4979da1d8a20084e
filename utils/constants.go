package utils

// Application constants
const (
	// Application name used in email subjects and documents
	AppName = "AI Video Generator"

	// Default port
	DefaultPort = "8080"

	// Session cookie name
	SessionName = "clipcraft-session"

	// Session key holding the signed token
	SessionTokenKey = "token"

	// Minimum password length
	MinPasswordLength = 6

	// bcrypt cost for stored passwords
	PasswordHashCost = 10

	// Header carrying the gateway webhook signature
	WebhookSignatureHeader = "X-Razorpay-Signature"

	// Header carrying the gateway webhook delivery id
	WebhookEventIDHeader = "X-Razorpay-Event-Id"

	// Default prompt for image-to-video when none is given
	DefaultImagePrompt = "animate this image smoothly"
)

// Error messages
const (
	ErrInvalidCredentials   = "Invalid credentials"
	ErrAllFieldsRequired    = "All fields are required"
	ErrPasswordTooShort     = "Password must be at least 6 characters"
	ErrUserExists           = "User already exists"
	ErrPromptRequired       = "Prompt is required for text-to-video"
	ErrImageRequired        = "Image is required for image-to-video"
	ErrInvalidMode          = "Mode must be either text or image"
	ErrServiceNotConfigured = "AI video generation service not configured"
	ErrMissingOrderFields   = "Missing required fields"
	ErrPaymentVerification  = "Payment verification failed"
	ErrInvalidSignature     = "Invalid signature"
	ErrTooManyRequests      = "Too many requests. Please try again later."
	ErrUnauthorized         = "Please login for access"
	ErrInternalServer       = "Internal server error"
	ErrInvalidResetToken    = "Reset link is invalid or has expired"
)

// Success messages
const (
	MsgRegisterSuccess = "User created successfully"
	MsgLoginSuccess    = "Login successful"
	MsgLogoutSuccess   = "Logout successful"
	MsgContactSent     = "Message sent successfully"
	MsgPaymentVerified = "Payment verified successfully"
	MsgResetRequested  = "If an account exists for that email, a reset link has been sent"
	MsgPasswordReset   = "Password updated successfully"
)
