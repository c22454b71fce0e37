package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeNotFound, "not found")
	if err.Code != ErrCodeNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeNotFound, err.Code)
	}
	if err.Message != "not found" {
		t.Errorf("expected message 'not found', got %q", err.Message)
	}
	if err.Category() != CategoryInput {
		t.Errorf("expected input category, got %s", err.Category())
	}
}

func TestAppError_MissingConfig_Success(t *testing.T) {
	err := MissingConfig("HF_TOKEN", "Get token from https://huggingface.co/settings/tokens")
	if err.Code != ErrCodeMissingConfig {
		t.Errorf("expected MISSING_CONFIG, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "HF_TOKEN environment variable required") {
		t.Errorf("expected message to name the variable, got %q", err.Error())
	}
	if !strings.HasSuffix(err.Message, "settings/tokens") {
		t.Errorf("expected hint appended, got %q", err.Message)
	}
	if err.Details["key"] != "HF_TOKEN" {
		t.Errorf("expected key=HF_TOKEN, got %v", err.Details["key"])
	}
	if !IsConfiguration(err) {
		t.Error("MissingConfig should be a configuration error")
	}
}

func TestAppError_MissingConfig_NoHint(t *testing.T) {
	err := MissingConfig("API_KEY", "")
	if err.Message != "API_KEY environment variable required." {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestAppError_FileNotFound_Success(t *testing.T) {
	err := FileNotFound("Audio file", "/tmp/missing.wav")
	if err.Message != "Audio file not found: /tmp/missing.wav" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Details["path"] != "/tmp/missing.wav" {
		t.Errorf("expected path detail, got %v", err.Details["path"])
	}
	if !IsInput(err) {
		t.Error("FileNotFound should be an input error")
	}
}

func TestAppError_Internal_Success(t *testing.T) {
	cause := fmt.Errorf("nil pointer")
	err := Internal(cause)
	if err.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", err.Code)
	}
	if err.Cause != cause {
		t.Error("expected cause to be set")
	}
	if !IsOperational(err) {
		t.Error("Internal should be operational")
	}
}

func TestAppError_Unauthorized_Success(t *testing.T) {
	err := Unauthorized("")
	if err.Code != ErrCodeUnauthorized {
		t.Errorf("expected UNAUTHORIZED, got %s", err.Code)
	}
	if err.Message != "Authentication required." {
		t.Errorf("expected default message, got %q", err.Message)
	}

	err2 := Unauthorized("bad token")
	if err2.Message != "bad token" {
		t.Errorf("expected custom message, got %q", err2.Message)
	}
}

func TestAppError_InvalidInput_Success(t *testing.T) {
	err := InvalidInput("end", "must be after start")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "end" {
		t.Errorf("expected field=end, got %v", err.Details["field"])
	}
}

func TestAppError_IOError_Success(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := IOError("write", "out.txt", cause)
	if err.Message != "Failed to write out.txt" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ExternalServiceError("diarization pipeline", nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := FileNotFound("Audio file", "a.wav").WithDetails(map[string]any{
		"extra": "info",
	})
	if err.Details["extra"] != "info" {
		t.Errorf("expected extra=info in details")
	}
	if err.Details["path"] != "a.wav" {
		t.Error("expected original details to be preserved")
	}

	err.WithDetails(map[string]any{
		"another": "detail",
	})
	if err.Details["another"] != "detail" {
		t.Error("expected another=detail to be merged")
	}
	if err.Details["extra"] != "info" {
		t.Error("expected extra=info to be preserved after second merge")
	}
}

func TestAppError_WithDetails_Nil(t *testing.T) {
	err := Internal(nil).WithDetails(nil)
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized even with nil input")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}

	err.WithDetail("key", "other")
	if err.Details["key"] != "other" {
		t.Errorf("expected key=other after overwrite")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := FileNotFound("Audio file", "x.wav")
	if got := err.Error(); got != "NOT_FOUND: Audio file not found: x.wav" {
		t.Errorf("unexpected error string %q", got)
	}
}

func TestAppError_Unwrap_Success(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Internal(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}

	err2 := MissingField("speaker")
	if err2.Unwrap() != nil {
		t.Error("Unwrap should return nil when no cause")
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     ErrorCode
		category Category
	}{
		{"MissingConfig", MissingConfig("HF_TOKEN", ""), ErrCodeMissingConfig, CategoryConfiguration},
		{"InvalidConfig", InvalidConfig("pipeline.base_url", "must be a valid URL"), ErrCodeInvalidConfig, CategoryConfiguration},
		{"FileNotFound", FileNotFound("Audio file", "a.wav"), ErrCodeNotFound, CategoryInput},
		{"MissingField", MissingField("name"), ErrCodeMissingField, CategoryInput},
		{"Validation", Validation("bad input"), ErrCodeInvalidInput, CategoryInput},
		{"ExternalServiceError", ExternalServiceError("pipeline", nil), ErrCodeExternalService, CategoryOperational},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized, CategoryOperational},
		{"Timeout", Timeout("diarization"), ErrCodeTimeout, CategoryOperational},
		{"Canceled", Canceled("diarization"), ErrCodeCanceled, CategoryOperational},
		{"ConnectionFailed", ConnectionFailed("pyannote"), ErrCodeConnectionFailed, CategoryOperational},
		{"IOError", IOError("write", "f", nil), ErrCodeIO, CategoryOperational},
		{"Internal", Internal(nil), ErrCodeInternal, CategoryOperational},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.Category() != tc.category {
				t.Errorf("expected category %s, got %s", tc.category, tc.err.Category())
			}
		})
	}
}

func TestCategoryForCode_Unknown(t *testing.T) {
	if got := CategoryForCode("SOMETHING_NEW"); got != CategoryOperational {
		t.Errorf("expected unknown codes to be operational, got %s", got)
	}
}

func TestCategoryOf(t *testing.T) {
	if CategoryOf(nil) != "" {
		t.Error("nil error should have no category")
	}
	if CategoryOf(fmt.Errorf("plain")) != CategoryOperational {
		t.Error("plain errors should be operational")
	}
	wrapped := fmt.Errorf("outer: %w", MissingConfig("HF_TOKEN", ""))
	if CategoryOf(wrapped) != CategoryConfiguration {
		t.Error("wrapped AppError should keep its category")
	}
}

func TestAppError_IsAppError_Success(t *testing.T) {
	appErr := FileNotFound("Audio file", "x")
	if !IsAppError(appErr) {
		t.Error("expected IsAppError to return true for AppError")
	}

	wrapped := fmt.Errorf("wrapped: %w", appErr)
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to return true for wrapped AppError")
	}

	if IsAppError(fmt.Errorf("plain error")) {
		t.Error("expected IsAppError to return false for plain error")
	}
}

func TestAppError_AsAppError_Success(t *testing.T) {
	appErr := Internal(nil)
	wrapped := fmt.Errorf("wrap: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}

	if _, ok := AsAppError(fmt.Errorf("not an app error")); ok {
		t.Error("expected AsAppError to return false for non-AppError")
	}
}

func TestAppError_ImplementsErrorInterface(t *testing.T) {
	var err error = MissingField("speaker")
	if err.Error() == "" {
		t.Error("Error() should not be empty")
	}

	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		t.Error("stderrors.As should work with AppError")
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", fmt.Errorf("disk full"), "disk full"},
		{
			"missing config",
			MissingConfig("HF_TOKEN", "Get token from https://huggingface.co/settings/tokens"),
			"HF_TOKEN environment variable required. Get token from https://huggingface.co/settings/tokens",
		},
		{
			"nested causes",
			ExternalServiceError("diarization pipeline", Unauthorized("token rejected")),
			"The diarization pipeline failed. (token rejected)",
		},
		{
			"canceled",
			Canceled("diarization pipeline").WithCause(fmt.Errorf("context canceled")),
			"The diarization pipeline was canceled. (context canceled)",
		},
		{
			"wrapped app error",
			fmt.Errorf("run: %w", FileNotFound("Audio file", "a.wav")),
			"Audio file not found: a.wav",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err); got != tc.want {
				t.Errorf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}
