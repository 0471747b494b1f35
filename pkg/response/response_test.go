package response_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	appErr "nmjl-service/pkg/errors"
	"nmjl-service/pkg/response"
)

func record(t *testing.T, write func(c *gin.Context)) (int, response.Body) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	write(c)

	var body response.Body
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: 14 tiles max", appErr.ErrInvalidHand), http.StatusBadRequest},
		{appErr.ErrInvalidTile, http.StatusBadRequest},
		{appErr.ErrHandNotFound, http.StatusNotFound},
		{appErr.ErrRunNotFound, http.StatusNotFound},
		{appErr.ErrTemplatesNotLoaded, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: bad json", appErr.ErrInvalidCardFile), http.StatusServiceUnavailable},
		{appErr.ErrInvalidAdminPassword, http.StatusUnauthorized},
		{appErr.ErrAdminDisabled, http.StatusForbidden},
		{fmt.Errorf("disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, body := record(t, func(c *gin.Context) { response.FromError(c, tc.err) })
		require.Equal(t, tc.want, code, tc.err.Error())
		require.Equal(t, tc.want, body.Code)
		require.Equal(t, tc.err.Error(), body.Msg)
	}
}

func TestPage(t *testing.T) {
	code, body := record(t, func(c *gin.Context) {
		response.Page(c, []string{"2025-1-dots-bams-bams"}, 6, 2, 1)
	})
	require.Equal(t, http.StatusOK, code)
	raw, err := json.Marshal(body.Data)
	require.NoError(t, err)
	require.JSONEq(t, `{"items":["2025-1-dots-bams-bams"],"total":6,"page":2,"size":1}`, string(raw))
}
