package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupAssignmentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(nil, nil, nil, nil, 0)
	r.POST("/api/assignments", handler.PostAssignment)
	r.POST("/api/transfers", handler.PostTransfer)
	r.PUT("/api/subscriptions", handler.PutSubscription)
	return r
}

func TestPostAssignment_RejectsMalformedBody(t *testing.T) {
	router := setupAssignmentRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/assignments", strings.NewReader(`{"ticket_id":"T-1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestPostTransfer_RejectsMalformedBody(t *testing.T) {
	router := setupAssignmentRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/transfers", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}

func TestPutSubscription_RejectsMalformedBody(t *testing.T) {
	router := setupAssignmentRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid request"}`, w.Body.String())
}
