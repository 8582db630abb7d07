package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"montage_service/internal/adapter/http/handlers/mocks"
	"montage_service/internal/domain/entities"
	"montage_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type montageMocks struct {
	montages    *mocks.MockIMontageUseCase
	transitions *mocks.MockITransitionUseCase
	leads       *mocks.MockILeadConversionUseCase
}

func newMontageRouter(t *testing.T) (*gin.Engine, montageMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	m := montageMocks{
		montages:    mocks.NewMockIMontageUseCase(ctrl),
		transitions: mocks.NewMockITransitionUseCase(ctrl),
		leads:       mocks.NewMockILeadConversionUseCase(ctrl),
	}
	h := NewMontageHandler(m.montages, m.transitions, m.leads)

	r := gin.New()
	r.POST("/v1/montages", h.CreateMontage)
	r.GET("/v1/montages/:id", h.GetMontage)
	r.GET("/v1/montages/:id/checklist", h.ListChecklist)
	r.GET("/v1/montages/:id/audit", h.ListAuditLog)
	r.GET("/v1/statuses", h.ListStatuses)
	r.POST("/v1/montages/:id/status", h.TransitionStatus)
	r.POST("/v1/montages/:id/convert", h.ConvertLead)
	return r, m
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestMontageHandler_CreateMontage(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := newMontageRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/montages", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown customer", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.montages.EXPECT().CreateMontage(gomock.Any(), gomock.Any()).Return(entities.Montage{}, nil, usecase.ErrCustomerNotFound)

		w := doJSON(r, http.MethodPost, "/v1/montages", `{"customer_id":"c-404"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.montages.EXPECT().CreateMontage(gomock.Any(), usecase.NewMontage{CustomerID: "c-1", FloorArea: 45}).Return(
			entities.Montage{ID: "m-1", DisplayCode: "M/2026/0001", Status: entities.StatusNewLead, CreatedAt: time.Now().UTC()},
			[]entities.ChecklistItem{{ID: "i-1", Label: "Umowa"}},
			nil,
		)

		w := doJSON(r, http.MethodPost, "/v1/montages", `{"customer_id":"c-1","floor_area":45}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		body := decodeBody(t, w)
		montage, _ := body["montage"].(map[string]any)
		if montage["display_code"] != "M/2026/0001" {
			t.Fatalf("unexpected body: %v", body)
		}
		if items, _ := body["checklist"].([]any); len(items) != 1 {
			t.Fatalf("expected one checklist item, got %v", body["checklist"])
		}
	})
}

func TestMontageHandler_Reads(t *testing.T) {
	t.Run("get not found", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.montages.EXPECT().GetMontage(gomock.Any(), "m-404").Return(entities.Montage{}, usecase.ErrMontageNotFound)

		w := doJSON(r, http.MethodGet, "/v1/montages/m-404", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["error"] != "MONTAGE_NOT_FOUND" {
			t.Fatalf("unexpected error body: %v", body)
		}
	})

	t.Run("checklist", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.montages.EXPECT().ListChecklist(gomock.Any(), "m-1").Return([]entities.ChecklistItem{{ID: "i-1"}, {ID: "i-2"}}, nil)

		w := doJSON(r, http.MethodGet, "/v1/montages/m-1/checklist", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("audit internal error", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.montages.EXPECT().ListAuditLog(gomock.Any(), "m-1").Return(nil, errors.New("dynamodb down"))

		w := doJSON(r, http.MethodGet, "/v1/montages/m-1/audit", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("statuses", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.montages.EXPECT().StatusCatalog().Return([]entities.StatusDefinition{{ID: entities.StatusNewLead, Label: "Nowy lead"}})

		w := doJSON(r, http.MethodGet, "/v1/statuses", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestMontageHandler_TransitionStatus(t *testing.T) {
	t.Run("missing status", func(t *testing.T) {
		r, _ := newMontageRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/status", `{"status":"  "}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"unknown status", usecase.ErrUnknownStatus, http.StatusBadRequest, "UNKNOWN_STATUS"},
		{"missing assignment", usecase.ErrMissingAssignment, http.StatusUnprocessableEntity, "MISSING_ASSIGNMENT"},
		{"missing document", &usecase.MissingDocumentError{Type: "floor_plan"}, http.StatusUnprocessableEntity, "MISSING_DOCUMENT"},
		{"conflict", usecase.ErrStatusConflict, http.StatusConflict, "STATUS_CONFLICT"},
		{"not found", usecase.ErrMontageNotFound, http.StatusNotFound, "MONTAGE_NOT_FOUND"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, m := newMontageRouter(t)
			m.transitions.EXPECT().Transition(gomock.Any(), "m-1", entities.StatusMeasurementScheduled).Return(entities.Montage{}, tc.err)

			w := doJSON(r, http.MethodPost, "/v1/montages/m-1/status", `{"status":"measurement_scheduled"}`)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if body := decodeBody(t, w); body["error"] != tc.code {
				t.Fatalf("expected code %s, got %v", tc.code, body)
			}
		})
	}

	t.Run("missing document reports its type", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.transitions.EXPECT().Transition(gomock.Any(), "m-1", entities.StatusCompleted).Return(entities.Montage{}, &usecase.MissingDocumentError{Type: "handover_protocol"})

		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/status", `{"status":"completed"}`)
		details, _ := decodeBody(t, w)["details"].(map[string]any)
		if details["document_type"] != "handover_protocol" {
			t.Fatalf("unexpected details: %v", details)
		}
	})

	t.Run("success", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.transitions.EXPECT().Transition(gomock.Any(), "m-1", entities.StatusMeasurementScheduled).Return(entities.Montage{ID: "m-1", Status: entities.StatusMeasurementScheduled}, nil)

		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/status", `{"status":"measurement_scheduled"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if body := decodeBody(t, w); body["status"] != "measurement_scheduled" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestMontageHandler_ConvertLead(t *testing.T) {
	t.Run("missing measurer", func(t *testing.T) {
		r, _ := newMontageRouter(t)
		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/convert", `{"require_payment":true}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not a lead", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.leads.EXPECT().AssignMeasurerAndAdvance(gomock.Any(), "m-1", "u-1", false).Return(usecase.ConversionResult{}, usecase.ErrNotALead)

		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/convert", `{"measurer_id":"u-1"}`)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
	})

	t.Run("payments unavailable", func(t *testing.T) {
		r, m := newMontageRouter(t)
		m.leads.EXPECT().AssignMeasurerAndAdvance(gomock.Any(), "m-1", "u-1", true).Return(usecase.ConversionResult{}, usecase.ErrPaymentUnavailable)

		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/convert", `{"measurer_id":"u-1","require_payment":true}`)
		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", w.Code)
		}
	})

	t.Run("payment link", func(t *testing.T) {
		r, m := newMontageRouter(t)
		order := entities.Order{ID: "o-1", Amount: 19900, Status: entities.OrderStatusPending}
		m.leads.EXPECT().AssignMeasurerAndAdvance(gomock.Any(), "m-1", "u-1", true).Return(usecase.ConversionResult{
			PaymentRequired: true,
			PaymentLink:     "https://pay.example/o-1",
			Montage:         entities.Montage{ID: "m-1", Status: entities.StatusLeadAwaitingPayment},
			Order:           &order,
		}, nil)

		w := doJSON(r, http.MethodPost, "/v1/montages/m-1/convert", `{"measurer_id":"u-1","require_payment":true}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		body := decodeBody(t, w)
		if body["payment_required"] != true || body["payment_link"] != "https://pay.example/o-1" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}
