package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"docket/internal/domain"
	"docket/internal/handler"
	"docket/internal/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testActor() *domain.User {
	return &domain.User{ID: uuid.New(), Name: "Dana Reyes"}
}

func setActor(c *gin.Context, actor *domain.User) {
	c.Set(middleware.ContextKeyActor, actor)
}

// newContext builds a test context for method and target with an optional JSON body.
func newContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(w *httptest.ResponseRecorder) handler.APIResponse {
	var resp handler.APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return resp
}
