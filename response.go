package rocketchat

import (
	"encoding/json"
	"net/http"
	"slices"
)

// envelope is the normalized form of a response. The REST API answers in
// one of two shapes depending on server version and endpoint:
//
//	{"status": "success"|"error", "message": "..."}           (legacy)
//	{"success": true|false, "error": "...", "errorType": "..."}
//
// Payload fields sit next to these keys in both shapes.
type envelope struct {
	payload   Record
	success   bool
	message   string
	errorType string
}

func normalizeEnvelope(payload Record) envelope {
	if payload.Has("success") {
		return envelope{
			payload:   payload,
			success:   payload.Bool("success"),
			message:   payload.String("error"),
			errorType: payload.String("errorType"),
		}
	}

	return envelope{
		payload: payload,
		success: payload.String("status") == "success",
		message: payload.String("message"),
	}
}

// succeeded reports whether a payload returned by classifyResponse is a
// plain success, as opposed to a failure the caller allowed through
// upstreamedErrors.
func succeeded(payload Record) bool {
	return normalizeEnvelope(payload).success
}

// classifyResponse turns a raw response into the parsed payload or a typed
// error:
//
//  1. a 5xx, or anything but 200 when failUnlessOK is set, is an *HTTPError
//     and the body is ignored;
//  2. a body that is not a JSON object is a *JSONParseError;
//  3. an unsuccessful envelope is a *StatusError, unless its errorType is
//     listed in upstreamedErrors, in which case the payload is returned and
//     the caller decides what "not found" means for it.
func classifyResponse(resp *rawResponse, failUnlessOK bool, upstreamedErrors []string) (Record, error) {
	if (failUnlessOK && resp.statusCode != http.StatusOK) || resp.statusCode >= http.StatusInternalServerError {
		return nil, &HTTPError{StatusCode: resp.statusCode, Status: resp.status}
	}

	var payload map[string]any
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		return nil, &JSONParseError{Body: string(resp.body), Err: err}
	}

	if payload == nil {
		return nil, &JSONParseError{Body: string(resp.body)}
	}

	env := normalizeEnvelope(Record(payload))

	if env.success {
		return env.payload, nil
	}

	if env.errorType != "" && slices.Contains(upstreamedErrors, env.errorType) {
		return env.payload, nil
	}

	return nil, &StatusError{
		Message:    env.message,
		ErrorType:  env.errorType,
		StatusCode: resp.statusCode,
	}
}
