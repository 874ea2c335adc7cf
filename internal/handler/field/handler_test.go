package field

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqscribe/requisition-api/internal/model"
)

func TestListFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &model.FieldConfig{Fields: map[string]model.FieldSpec{
		"glucose":      {Xref: "chk_glucose", OnState: "On"},
		"cbc":          {Xref: "chk_cbc", OnState: "On"},
		"other_tests1": {Xref: "txt_other_tests1"},
	}}

	r := gin.New()
	NewHandler(cfg).RegisterRoutes(r.Group("/api/v1"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/fields", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Name     string `json:"name"`
			Xref     string `json:"field_xref"`
			Overflow bool   `json:"overflow"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 3)
	assert.Equal(t, "cbc", resp.Data[0].Name, "catalog is sorted by name")
	assert.True(t, resp.Data[2].Overflow)

	// second request is served from cache with identical content
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/api/v1/fields", nil))
	assert.Equal(t, w.Body.String(), w2.Body.String())
}
