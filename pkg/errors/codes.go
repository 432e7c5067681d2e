package errors

import "net/http"

// ErrorCode is a string identifier for a specific failure category.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTimeout            ErrorCode = "COMMON_005"
	ErrCodeValidation         ErrorCode = "COMMON_006"
	ErrCodeSerialization      ErrorCode = "COMMON_007"
	ErrCodeDatabaseError      ErrorCode = "COMMON_008"
	ErrCodeCacheError         ErrorCode = "COMMON_009"
	ErrCodeExternalService    ErrorCode = "COMMON_010"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_011"
	ErrCodeNotImplemented     ErrorCode = "COMMON_012"
)

// Document module error codes.
const (
	ErrCodeDocumentNotFound    ErrorCode = "DOC_001"
	ErrCodeDocumentEmpty       ErrorCode = "DOC_002"
	ErrCodeDocumentTooLarge    ErrorCode = "DOC_003"
	ErrCodeDocumentStoreFailed ErrorCode = "DOC_004"
	ErrCodeDocumentTypeInvalid ErrorCode = "DOC_005"
)

// Configuration error codes.
const (
	ErrCodeInvalidConfig ErrorCode = "CONFIG_001"
)

// Analysis module error codes.
const (
	ErrCodeAIServiceUnavailable ErrorCode = "ANALYSIS_001"
	ErrCodeAIResponseMalformed  ErrorCode = "ANALYSIS_002"
	ErrCodeAnalysisPublish      ErrorCode = "ANALYSIS_003"
)

// CodeOK is the sentinel returned by GetCode for a nil error.
const CodeOK ErrorCode = "OK"

// HTTPStatus maps an error code to the HTTP status the API layer should emit.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ErrCodeBadRequest, ErrCodeValidation, ErrCodeDocumentEmpty,
		ErrCodeDocumentTooLarge, ErrCodeDocumentTypeInvalid:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeDocumentNotFound:
		return http.StatusNotFound
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeServiceUnavailable, ErrCodeAIServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
