package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vromao/catering-ops/internal/domain"
	"github.com/vromao/catering-ops/internal/dto"
)

func setupEventRouter(h *EventHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	events := router.Group("/events")
	{
		events.POST("", h.CreateEvent)
		events.GET("", h.ListEvents)
		events.GET("/:id", h.GetEvent)
		events.PATCH("/:id", h.UpdateEvent)
		events.GET("/:id/movements", h.ListEventMovements)
		events.DELETE("/:id", h.DeleteEvent)
	}
	return router
}

func TestEventHandler_CreateEvent(t *testing.T) {
	clientID := uuid.New()

	tests := []struct {
		name           string
		request        any
		mockFunc       func(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "successful creation",
			request: &dto.CreateEventRequest{
				ClientID:   clientID.String(),
				Name:       "garden wedding",
				GuestCount: 100,
				StartsAt:   time.Now().Add(24 * time.Hour),
				EndsAt:     time.Now().Add(30 * time.Hour),
			},
			mockFunc: func(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
				return &dto.EventResponse{
					ID:         uuid.NewString(),
					ClientID:   req.ClientID,
					Name:       req.Name,
					GuestCount: req.GuestCount,
					Status:     "DRAFT",
				}, nil
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing required fields",
			request:        map[string]any{"name": "no client"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "INVALID_REQUEST",
		},
		{
			name: "unknown client",
			request: &dto.CreateEventRequest{
				ClientID: uuid.NewString(),
				Name:     "orphan event",
				StartsAt: time.Now(),
				EndsAt:   time.Now().Add(time.Hour),
			},
			mockFunc: func(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
				return nil, domain.ErrClientNotFound
			},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewEventHandler(&MockEventService{CreateEventFunc: tt.mockFunc})
			router := setupEventRouter(h)

			body, _ := json.Marshal(tt.request)
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedCode != "" {
				var response dto.ErrorResponse
				if err := json.Unmarshal(w.Body.Bytes(), &response); err == nil {
					if response.Code != tt.expectedCode {
						t.Errorf("expected code %s, got %s", tt.expectedCode, response.Code)
					}
				}
			}
		})
	}
}

func TestEventHandler_UpdateEvent_IllegalTransition(t *testing.T) {
	eventID := uuid.New()
	h := NewEventHandler(&MockEventService{
		UpdateEventFunc: func(ctx context.Context, id uuid.UUID, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
			return nil, domain.ErrInvalidTransition
		},
	})
	router := setupEventRouter(h)

	body, _ := json.Marshal(map[string]string{"status": "IN_PROGRESS"})
	req := httptest.NewRequest(http.MethodPatch, "/events/"+eventID.String(), bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", w.Code)
	}
	var response dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Code != "INVALID_TRANSITION" {
		t.Errorf("expected code INVALID_TRANSITION, got %s", response.Code)
	}
}

func TestEventHandler_ListEvents_Filters(t *testing.T) {
	clientID := uuid.New()
	var gotClientID *uuid.UUID
	var gotStatus string
	var gotPage, gotPageSize int

	h := NewEventHandler(&MockEventService{
		ListEventsFunc: func(ctx context.Context, cid *uuid.UUID, status string, page, pageSize int) ([]*dto.EventResponse, error) {
			gotClientID = cid
			gotStatus = status
			gotPage = page
			gotPageSize = pageSize
			return []*dto.EventResponse{}, nil
		},
	})
	router := setupEventRouter(h)

	req := httptest.NewRequest(http.MethodGet,
		"/events?client_id="+clientID.String()+"&status=PLANNED&page=2&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if gotClientID == nil || *gotClientID != clientID {
		t.Errorf("expected client filter %s, got %v", clientID, gotClientID)
	}
	if gotStatus != "PLANNED" {
		t.Errorf("expected status filter PLANNED, got %s", gotStatus)
	}
	if gotPage != 2 || gotPageSize != 10 {
		t.Errorf("expected page 2 size 10, got page %d size %d", gotPage, gotPageSize)
	}
}

func TestEventHandler_ListEvents_BadClientFilter(t *testing.T) {
	h := NewEventHandler(&MockEventService{})
	router := setupEventRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/events?client_id=nope", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestEventHandler_ListEventMovements(t *testing.T) {
	eventID := uuid.New()
	h := NewEventHandler(&MockEventService{
		ListEventMovementsFunc: func(ctx context.Context, id uuid.UUID) ([]*dto.MovementResponse, error) {
			return []*dto.MovementResponse{
				{ID: uuid.NewString(), Kind: "CONSUMPTION"},
				{ID: uuid.NewString(), Kind: "RETURN"},
			}, nil
		},
	})
	router := setupEventRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/events/"+eventID.String()+"/movements", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var response []dto.MovementResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response) != 2 {
		t.Errorf("expected 2 movements, got %d", len(response))
	}
}

func TestEventHandler_DeleteEvent(t *testing.T) {
	eventID := uuid.New()
	deleted := false
	h := NewEventHandler(&MockEventService{
		DeleteEventFunc: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	})
	router := setupEventRouter(h)

	req := httptest.NewRequest(http.MethodDelete, "/events/"+eventID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if !deleted {
		t.Error("expected delete to reach the service")
	}
}
