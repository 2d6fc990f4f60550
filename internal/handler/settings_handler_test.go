package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-dashboard/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockSettingsService is a mock implementation of SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Load(ctx context.Context) (model.Preferences, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Preferences), args.Error(1)
}

func (m *MockSettingsService) Current() model.Preferences {
	return m.Called().Get(0).(model.Preferences)
}

func (m *MockSettingsService) Update(ctx context.Context, update model.PreferencesUpdate) (model.Preferences, error) {
	args := m.Called(ctx, update)
	return args.Get(0).(model.Preferences), args.Error(1)
}

func TestSettingsHandler_Get(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Current").Return(model.Preferences{Theme: model.ThemeDark})
	h := NewSettingsHandler(svc, zerolog.Nop())

	w := httptest.NewRecorder()
	h.Get(w, httptest.NewRequest(http.MethodGet, "/api/settings", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"dark"}`, w.Body.String())
}

func TestSettingsHandler_Update(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockSettingsService)
		expectedStatus int
		expectedCode   string
		expectedBody   string
	}{
		{
			name: "Switch to dark",
			body: `{"theme":"dark"}`,
			setupMock: func(m *MockSettingsService) {
				m.On("Update", mock.Anything, mock.MatchedBy(func(u model.PreferencesUpdate) bool {
					return u.Theme != nil && *u.Theme == "dark"
				})).Return(model.Preferences{Theme: model.ThemeDark}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"theme":"dark"}`,
		},
		{
			name:           "Unsupported theme rejected by validation",
			body:           `{"theme":"sepia"}`,
			setupMock:      func(m *MockSettingsService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeValidation,
		},
		{
			name: "Empty update",
			body: `{}`,
			setupMock: func(m *MockSettingsService) {
				m.On("Update", mock.Anything, model.PreferencesUpdate{}).
					Return(model.DefaultPreferences(), model.ErrSettingsUnchanged)
			},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeSettingsUnchanged,
		},
		{
			name: "Persistence failure",
			body: `{"theme":"light"}`,
			setupMock: func(m *MockSettingsService) {
				m.On("Update", mock.Anything, mock.Anything).
					Return(model.DefaultPreferences(), errors.New("read-only filesystem"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   model.ErrCodeInternalError,
		},
		{
			name:           "Invalid JSON",
			body:           `theme=dark`,
			setupMock:      func(m *MockSettingsService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   model.ErrCodeInvalidJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSettingsService)
			tt.setupMock(svc)
			h := NewSettingsHandler(svc, zerolog.Nop())

			req := httptest.NewRequest(http.MethodPatch, "/api/settings", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			h.Update(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedCode != "" {
				var resp model.ErrorResponse
				require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, tt.expectedCode, resp.Error)
			}
			svc.AssertExpectations(t)
		})
	}
}
