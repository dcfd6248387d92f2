// Copyright (c) 2026 Freshlist. All rights reserved.

package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshlist/freshlist/internal/auth"
)

func newTestRouter() http.Handler {
	service, _, _ := newService()
	return auth.NewHandler(service).Routes()
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_SignUp verifies a valid registration responds 201 with a token
envelope.
*/
func TestHandler_SignUp(t *testing.T) {
	router := newTestRouter()

	recorder := postJSON(t, router, "/sign-up",
		`{"username":"ana","email":"ana@example.com","password":"hunter2hunter2"}`)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["token"])
}

/*
TestHandler_SignUp_Validation verifies field-level failures respond 400 and
never reach the service.
*/
func TestHandler_SignUp_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"short_username", `{"username":"ab","email":"a@b.com","password":"hunter2hunter2"}`},
		{"bad_email", `{"username":"ana","email":"nope","password":"hunter2hunter2"}`},
		{"short_password", `{"username":"ana","email":"a@b.com","password":"short"}`},
		{"missing_fields", `{}`},
		{"broken_json", `{"username":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := postJSON(t, newTestRouter(), "/sign-up", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

/*
TestHandler_SignIn verifies the full register-then-sign-in flow over HTTP,
including the generic rejection for bad credentials.
*/
func TestHandler_SignIn(t *testing.T) {
	router := newTestRouter()

	recorder := postJSON(t, router, "/sign-up",
		`{"username":"ana","email":"ana@example.com","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = postJSON(t, router, "/sign-in",
		`{"username":"ana","password":"hunter2hunter2"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["token"])

	// Wrong password and unknown username respond identically.
	wrongPassword := postJSON(t, router, "/sign-in",
		`{"username":"ana","password":"wrong-password"}`)
	unknownUser := postJSON(t, router, "/sign-in",
		`{"username":"nobody","password":"hunter2hunter2"}`)

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Contains(t, wrongPassword.Body.String(), "Wrong credentials")
}
