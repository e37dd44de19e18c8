package httputil_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/limbo/gratudiary/pkg/httputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorResponse(t *testing.T) {
	rr := httptest.NewRecorder()
	httputil.WriteErrorResponse(rr, http.StatusConflict, "exists", errors.New("dup"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp httputil.ErrorResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, httputil.ErrorResponse{Code: http.StatusConflict, Message: "exists", Details: "dup"}, resp)
}

func TestWriteAttachment(t *testing.T) {
	rr := httptest.NewRecorder()
	httputil.WriteAttachment(rr, "backup.json", []byte(`[]`))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="backup.json"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rr.Header().Get("Content-Length"))
	assert.Equal(t, `[]`, rr.Body.String())
}
