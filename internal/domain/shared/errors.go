package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors. Messages are Vietnamese because they are returned
// verbatim to the dashboard frontend.
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "Không tìm thấy dữ liệu")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "Dữ liệu đã tồn tại")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "Dữ liệu đầu vào không hợp lệ")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "Chưa xác thực")
	ErrForbidden     = NewDomainError("FORBIDDEN", "Không có quyền truy cập")
)
