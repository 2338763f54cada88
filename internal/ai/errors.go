package ai

import "fmt"

// ErrorType categorizes provider failures
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration"
	ErrorTypeConnection    ErrorType = "connection"
	ErrorTypeRequest       ErrorType = "request"
	ErrorTypeResponse      ErrorType = "response"
)

// ProviderError wraps a provider failure with its origin and category
type ProviderError struct {
	Provider string
	Type     ErrorType
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider %s error: %s: %v", e.Provider, e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s provider %s error: %s", e.Provider, e.Type, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error for a provider
func NewConfigurationError(provider, field, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Type:     ErrorTypeConfiguration,
		Message:  fmt.Sprintf("%s: %s", field, message),
	}
}

// NewRequestError creates a request construction error for a provider
func NewRequestError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Type:     ErrorTypeRequest,
		Message:  message,
		Err:      err,
	}
}

// NewConnectionError creates a connection error for a provider
func NewConnectionError(provider string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Type:     ErrorTypeConnection,
		Message:  "request failed",
		Err:      err,
	}
}

// NewResponseError creates a response error for a provider
func NewResponseError(provider, message string) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Type:     ErrorTypeResponse,
		Message:  message,
	}
}
