package analyze

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"fridge-chef/internal/core/analysis"
	"fridge-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	result *common.AnalysisResult
	err    error
}

func (f *fakeAnalyzer) AnalyzeImage(ctx context.Context, imageData string) (*common.AnalysisResult, error) {
	return f.result, f.err
}

type fakeFormatter struct {
	data string
	err  error
}

func (f *fakeFormatter) FormatImageData(data []byte) (string, error) {
	return f.data, f.err
}

func newTestRouter(analyzer Analyzer, formatter ImageFormatter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(analyzer, formatter)
	router.POST("/analyze", handler.HandleAnalyze)
	return router
}

func multipartImageRequest(t *testing.T, fieldName string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, "fridge.jpg")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestHandleAnalyzeSuccess(t *testing.T) {
	analyzer := &fakeAnalyzer{
		result: &common.AnalysisResult{
			Ingredients: []string{"eggs", "spinach"},
			Recipes: []common.Recipe{
				{Title: "Spinach Omelette", ShortDescription: "", IngredientsUsed: []string{"eggs", "spinach"}, Steps: []string{"Cook."}},
			},
			StretchRecipes: []common.StretchRecipe{},
		},
	}
	router := newTestRouter(analyzer, &fakeFormatter{data: "data:image/jpeg;base64,xxxx"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte("fake image bytes")))

	require.Equal(t, http.StatusOK, w.Code)
	var resp common.AnalysisResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"eggs", "spinach"}, resp.Ingredients)
	require.Len(t, resp.Recipes, 1)
	assert.Equal(t, "Spinach Omelette", resp.Recipes[0].Title)
	assert.NotNil(t, resp.StretchRecipes)
}

func TestHandleAnalyzeMissingImageField(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{}, &fakeFormatter{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "photo", []byte("bytes")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No image uploaded", decodeError(t, w))
}

func TestHandleAnalyzeNoMultipartBody(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{}, &fakeFormatter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No image uploaded", decodeError(t, w))
}

func TestHandleAnalyzeEmptyFile(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{}, &fakeFormatter{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte{}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Uploaded file is empty", decodeError(t, w))
}

func TestHandleAnalyzeFormatterError(t *testing.T) {
	router := newTestRouter(&fakeAnalyzer{}, &fakeFormatter{err: common.ErrInvalidImageFormat})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte("not an image")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong while analyzing the image.", decodeError(t, w))
}

func TestHandleAnalyzeMalformedModelOutput(t *testing.T) {
	analyzer := &fakeAnalyzer{err: analysis.ErrMalformedModelOutput}
	router := newTestRouter(analyzer, &fakeFormatter{data: "data:image/jpeg;base64,xxxx"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte("bytes")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "AI response could not be parsed as JSON. Try again in a moment.", decodeError(t, w))
}

func TestHandleAnalyzeWrappedMalformedModelOutput(t *testing.T) {
	analyzer := &fakeAnalyzer{err: fmt.Errorf("vision step failed: %w", analysis.ErrMalformedModelOutput)}
	router := newTestRouter(analyzer, &fakeFormatter{data: "data:image/jpeg;base64,xxxx"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte("bytes")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "AI response could not be parsed as JSON. Try again in a moment.", decodeError(t, w))
}

func TestHandleAnalyzeGenericFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{err: errors.New("upstream unavailable")}
	router := newTestRouter(analyzer, &fakeFormatter{data: "data:image/jpeg;base64,xxxx"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte("bytes")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong while analyzing the image.", decodeError(t, w))
}

func TestHandleAnalyzeInvalidShapeFoldsIntoGeneric(t *testing.T) {
	analyzer := &fakeAnalyzer{err: analysis.ErrInvalidShape}
	router := newTestRouter(analyzer, &fakeFormatter{data: "data:image/jpeg;base64,xxxx"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, multipartImageRequest(t, "image", []byte("bytes")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong while analyzing the image.", decodeError(t, w))
}
