package errors

// Error code constants
// Format: CATEGORY_SPECIFIC_DETAIL
// Clients map these codes to their own copy

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate signup
	AuthSessionInvalid     = "AUTH_SESSION_INVALID"     // bad session token

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Resource (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"

	// ==================== Catalog (PRODUCT_) ====================
	ProductNotFound = "PRODUCT_NOT_FOUND"

	// ==================== Cart (CART_) ====================
	CartEmpty        = "CART_EMPTY"          // checkout with nothing in the cart
	CartItemNotFound = "CART_ITEM_NOT_FOUND" // unknown line id

	// ==================== Promo (PROMO_) ====================
	PromoInvalid = "PROMO_INVALID"

	// ==================== Order (ORDER_) ====================
	OrderNotFound = "ORDER_NOT_FOUND"

	// ==================== Report (REPORT_) ====================
	ReportUploadDisabled = "REPORT_UPLOAD_DISABLED" // no bucket configured
	ReportUploadFailed   = "REPORT_UPLOAD_FAILED"

	// ==================== Request (REQUEST_) ====================
	RequestCancelled = "REQUEST_CANCELLED" // client went away mid-operation

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalStoreError  = "INTERNAL_STORE_ERROR" // session store failure
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
	InternalConfigError = "INTERNAL_CONFIG_ERROR"
)
