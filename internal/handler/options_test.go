package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babilu-online/lootbox-contract/internal/domain"
	"github.com/babilu-online/lootbox-contract/internal/engine"
)

// newOptionRouter mounts the option handler the way the server does, so URL
// parameters resolve through the chi route context.
func newOptionRouter(svc engine.Service) *chi.Mux {
	h := NewOptionHandler(svc)
	r := chi.NewRouter()
	r.Post("/options", h.HandleAddOption)
	r.Get("/options", h.HandleGetOptionCount)
	r.Put("/options/{option}", h.HandleSetOptionSettings)
	r.Get("/options/{option}", h.HandleGetOption)
	r.Put("/options/{option}/classes/{class}/tokens", h.HandleSetTokenIDs)
	r.Get("/options/{option}/classes/{class}/tokens", h.HandleGetTokenIDs)
	return r
}

func validOptionBody() OptionConfigBody {
	return OptionConfigBody{
		MaxQuantityPerOpen: 6,
		ClassStart:         0,
		NumClasses:         4,
		ClassProbabilities: []uint16{0, 3000, 1500, 500},
		Guarantees:         []uint32{0, 0, 0, 1},
	}
}

func TestHandleAddOption(t *testing.T) {
	tests := []struct {
		name           string
		reqBody        interface{}
		addOptionFn    func(ctx context.Context, p engine.AddOptionParams) (uint32, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Invalid JSON",
			reqBody:        "not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequest,
		},
		{
			name: "Missing Probabilities",
			reqBody: AddOptionRequest{
				OptionConfigBody: OptionConfigBody{
					MaxQuantityPerOpen: 6,
					NumClasses:         4,
					Guarantees:         []uint32{0, 0, 0, 1},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestSummary,
		},
		{
			name:    "Length Mismatch Rejected By Service",
			reqBody: AddOptionRequest{OptionConfigBody: validOptionBody()},
			addOptionFn: func(context.Context, engine.AddOptionParams) (uint32, error) {
				return 0, domain.ErrInvalidInput
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   ErrMsgInvalidRequestError,
		},
		{
			name: "Success",
			reqBody: AddOptionRequest{
				OptionConfigBody: validOptionBody(),
				UncommonTokenIDs: []uint64{101, 102},
				RareTokenIDs:     []uint64{201},
				EpicTokenIDs:     []uint64{301},
			},
			addOptionFn: func(_ context.Context, p engine.AddOptionParams) (uint32, error) {
				if len(p.UncommonTokenIDs) != 2 {
					t.Errorf("expected 2 uncommon token ids, got %d", len(p.UncommonTokenIDs))
				}
				return 3, nil
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"option":3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newOptionRouter(&stubService{addOptionFn: tt.addOptionFn})

			var body []byte
			if s, ok := tt.reqBody.(string); ok {
				body = []byte(s)
			} else {
				body, _ = json.Marshal(tt.reqBody)
			}

			req := httptest.NewRequest("POST", "/options", bytes.NewBuffer(body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleSetOptionSettings(t *testing.T) {
	t.Run("Invalid Option Param", func(t *testing.T) {
		router := newOptionRouter(&stubService{})
		body, _ := json.Marshal(SetOptionSettingsRequest{OptionConfigBody: validOptionBody()})

		req := httptest.NewRequest("PUT", "/options/abc", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid option parameter")
	})

	t.Run("Option Out Of Range", func(t *testing.T) {
		router := newOptionRouter(&stubService{
			setOptionSettingsFn: func(context.Context, uint32, engine.OptionConfig) error {
				return domain.ErrOptionOutOfRange
			},
		})
		body, _ := json.Marshal(SetOptionSettingsRequest{OptionConfigBody: validOptionBody()})

		req := httptest.NewRequest("PUT", "/options/9", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgOptionOutOfRangeError)
	})

	t.Run("Success", func(t *testing.T) {
		var gotOption uint32
		router := newOptionRouter(&stubService{
			setOptionSettingsFn: func(_ context.Context, option uint32, cfg engine.OptionConfig) error {
				gotOption = option
				assert.Equal(t, uint32(6), cfg.MaxQuantityPerOpen)
				return nil
			},
		})
		body, _ := json.Marshal(SetOptionSettingsRequest{OptionConfigBody: validOptionBody()})

		req := httptest.NewRequest("PUT", "/options/2", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, uint32(2), gotOption)
		assert.Contains(t, rec.Body.String(), MsgOptionUpdatedSuccess)
	})
}

func TestHandleTokenPool(t *testing.T) {
	t.Run("Set Success", func(t *testing.T) {
		router := newOptionRouter(&stubService{
			setTokenIDsFn: func(_ context.Context, option, localClass uint32, tokenIDs []uint64) error {
				assert.Equal(t, uint32(1), option)
				assert.Equal(t, uint32(2), localClass)
				assert.Equal(t, []uint64{201, 202}, tokenIDs)
				return nil
			},
		})
		body, _ := json.Marshal(SetTokenIDsRequest{TokenIDs: []uint64{201, 202}})

		req := httptest.NewRequest("PUT", "/options/1/classes/2/tokens", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), MsgTokenPoolUpdatedSuccess)
	})

	t.Run("Set Class Out Of Range", func(t *testing.T) {
		router := newOptionRouter(&stubService{
			setTokenIDsFn: func(context.Context, uint32, uint32, []uint64) error {
				return domain.ErrClassOutOfRange
			},
		})
		body, _ := json.Marshal(SetTokenIDsRequest{TokenIDs: []uint64{201}})

		req := httptest.NewRequest("PUT", "/options/1/classes/9/tokens", bytes.NewBuffer(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgClassOutOfRangeError)
	})

	t.Run("Get Success", func(t *testing.T) {
		router := newOptionRouter(&stubService{
			tokenIDsFn: func(context.Context, uint32, uint32) ([]uint64, error) {
				return []uint64{301, 302}, nil
			},
		})

		req := httptest.NewRequest("GET", "/options/0/classes/3/tokens", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp TokenIDsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, uint32(3), resp.Class)
		assert.Equal(t, []uint64{301, 302}, resp.TokenIDs)
	})
}

func TestHandleGetOption(t *testing.T) {
	t.Run("Not Configured", func(t *testing.T) {
		router := newOptionRouter(&stubService{
			optionFn: func(context.Context, uint32) (domain.OptionSettings, error) {
				return domain.OptionSettings{}, domain.ErrOptionNotConfigured
			},
		})

		req := httptest.NewRequest("GET", "/options/4", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgOptionNotConfiguredError)
	})

	t.Run("Success", func(t *testing.T) {
		router := newOptionRouter(&stubService{
			optionFn: func(context.Context, uint32) (domain.OptionSettings, error) {
				return domain.OptionSettings{
					Exists:               true,
					MaxQuantityPerOpen:   6,
					ClassStart:           0,
					NumClasses:           4,
					ClassProbabilities:   []uint16{0, 3000, 1500, 500},
					Guarantees:           []uint32{0, 0, 0, 1},
					HasGuaranteedClasses: true,
				}, nil
			},
		})

		req := httptest.NewRequest("GET", "/options/0", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp OptionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Enabled)
		assert.True(t, resp.HasGuaranteedClasses)
		assert.Equal(t, uint32(4), resp.NumClasses)
	})
}

func TestHandleGetOptionCount(t *testing.T) {
	router := newOptionRouter(&stubService{
		optionCountFn: func(context.Context) uint32 { return 5 },
	})

	req := httptest.NewRequest("GET", "/options", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":5`)
}
