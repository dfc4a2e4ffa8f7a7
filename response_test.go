package rocketchat

import (
	"errors"
	"net/http"
	"testing"
)

func TestNormalizeEnvelope(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		payload   Record
		success   bool
		message   string
		errorType string
	}{
		{"legacy success", Record{"status": "success"}, true, "", ""},
		{"legacy error", Record{"status": "error", "message": "Unauthorized"}, false, "Unauthorized", ""},
		{"success true", Record{"success": true}, true, "", ""},
		{
			"success false",
			Record{"success": false, "error": "Room not found", "errorType": "error-room-not-found"},
			false, "Room not found", "error-room-not-found",
		},
		{"success key wins over status", Record{"success": false, "status": "success"}, false, "", ""},
		{"neither shape", Record{"value": 1}, false, "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := normalizeEnvelope(tt.payload)

			if env.success != tt.success {
				t.Errorf("expected success=%t, got %t", tt.success, env.success)
			}

			if env.message != tt.message {
				t.Errorf("expected message=%q, got %q", tt.message, env.message)
			}

			if env.errorType != tt.errorType {
				t.Errorf("expected errorType=%q, got %q", tt.errorType, env.errorType)
			}
		})
	}
}

func TestClassifyResponse_HTTPErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		failUnlessOK bool
	}{
		{"server error", http.StatusInternalServerError, false},
		{"bad gateway", http.StatusBadGateway, false},
		{"strict not found", http.StatusNotFound, true},
		{"strict created", http.StatusCreated, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &rawResponse{statusCode: tt.statusCode, body: []byte(`{"success":true}`)}

			payload, err := classifyResponse(resp, tt.failUnlessOK, nil)

			var httpErr *HTTPError
			if !errors.As(err, &httpErr) {
				t.Fatalf("expected *HTTPError, got %v", err)
			}

			if httpErr.StatusCode != tt.statusCode {
				t.Errorf("expected StatusCode=%d, got %d", tt.statusCode, httpErr.StatusCode)
			}

			if payload != nil {
				t.Errorf("expected no payload, got %v", payload)
			}
		})
	}
}

func TestClassifyResponse_JSONParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"plain text", "Internal Server Error", true},
		{"array", `[{"success":true}]`, true},
		{"null", "null", false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := classifyResponse(&rawResponse{statusCode: http.StatusOK, body: []byte(tt.body)}, false, nil)

			var parseErr *JSONParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *JSONParseError, got %v", err)
			}

			if parseErr.Body != tt.body {
				t.Errorf("expected Body=%q, got %q", tt.body, parseErr.Body)
			}

			if (parseErr.Err != nil) != tt.wantErr {
				t.Errorf("expected wrapped error=%t, got %v", tt.wantErr, parseErr.Err)
			}
		})
	}
}

func TestClassifyResponse_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"success shape", `{"success":true,"channel":{"_id":"c1"}}`},
		{"legacy shape", `{"status":"success","channel":{"_id":"c1"}}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			payload, err := classifyResponse(&rawResponse{statusCode: http.StatusOK, body: []byte(tt.body)}, true, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := payload.Object("channel").String("_id"); got != "c1" {
				t.Errorf("expected channel id c1, got %q", got)
			}

			if !succeeded(payload) {
				t.Error("expected payload to report success")
			}
		})
	}
}

func TestClassifyResponse_StatusErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		statusCode    int
		body          string
		upstreamed    []string
		wantMessage   string
		wantErrorType string
	}{
		{
			name:        "legacy unauthorized",
			statusCode:  http.StatusUnauthorized,
			body:        `{"status":"error","message":"You must be logged in to do this."}`,
			wantMessage: "You must be logged in to do this.",
		},
		{
			name:          "not upstreamed",
			statusCode:    http.StatusBadRequest,
			body:          `{"success":false,"error":"The required \"roomId\" or \"roomName\" param provided does not match any channel [error-room-not-found]","errorType":"error-room-not-found"}`,
			wantMessage:   `The required "roomId" or "roomName" param provided does not match any channel [error-room-not-found]`,
			wantErrorType: ErrTypeRoomNotFound,
		},
		{
			name:          "other error type upstreamed",
			statusCode:    http.StatusBadRequest,
			body:          `{"success":false,"error":"Invalid user","errorType":"error-invalid-user"}`,
			upstreamed:    []string{ErrTypeRoomNotFound},
			wantMessage:   "Invalid user",
			wantErrorType: ErrTypeInvalidUser,
		},
		{
			name:        "success false without error type",
			statusCode:  http.StatusOK,
			body:        `{"success":false,"error":"Something failed"}`,
			upstreamed:  []string{""},
			wantMessage: "Something failed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resp := &rawResponse{statusCode: tt.statusCode, body: []byte(tt.body)}

			_, err := classifyResponse(resp, false, tt.upstreamed)

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}

			if statusErr.Message != tt.wantMessage {
				t.Errorf("expected Message=%q, got %q", tt.wantMessage, statusErr.Message)
			}

			if statusErr.ErrorType != tt.wantErrorType {
				t.Errorf("expected ErrorType=%q, got %q", tt.wantErrorType, statusErr.ErrorType)
			}

			if statusErr.StatusCode != tt.statusCode {
				t.Errorf("expected StatusCode=%d, got %d", tt.statusCode, statusErr.StatusCode)
			}
		})
	}
}

func TestClassifyResponse_Upstreamed(t *testing.T) {
	t.Parallel()

	body := `{"success":false,"error":"Room not found","errorType":"error-room-not-found"}`

	payload, err := classifyResponse(&rawResponse{statusCode: http.StatusBadRequest, body: []byte(body)}, false, []string{ErrTypeRoomNotFound})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if succeeded(payload) {
		t.Error("expected payload to report failure")
	}

	if payload.String("errorType") != ErrTypeRoomNotFound {
		t.Errorf("expected errorType in payload, got %v", payload)
	}
}
