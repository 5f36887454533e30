package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthml/healthdata-api/internal/model"
	"github.com/healthml/healthdata-api/internal/service/crud"
	apperrors "github.com/healthml/healthdata-api/pkg/errors"
	"github.com/healthml/healthdata-api/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePatientStore struct {
	patients map[string]*model.Patient
	nextID   int64
}

func newFakePatientStore() *fakePatientStore {
	return &fakePatientStore{patients: map[string]*model.Patient{}, nextID: 1}
}

func (f *fakePatientStore) Create(_ context.Context, rec *model.Patient) error {
	rec.ID = f.nextID
	f.nextID++
	f.patients["1"] = rec
	return nil
}

func (f *fakePatientStore) Get(_ context.Context, id string) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	return p, nil
}

func (f *fakePatientStore) Update(_ context.Context, id string, fields map[string]interface{}) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient", nil)
	}
	if age, ok := fields["Age"]; ok {
		v := age.(int)
		p.Age = &v
	}
	return p, nil
}

func (f *fakePatientStore) Delete(_ context.Context, id string) error {
	if _, ok := f.patients[id]; !ok {
		return apperrors.NotFound("patient", nil)
	}
	delete(f.patients, id)
	return nil
}

func (f *fakePatientStore) List(_ context.Context, page model.Page) ([]*model.Patient, int64, error) {
	out := []*model.Patient{}
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePatientStore) Latest(_ context.Context, _ int) ([]*model.Patient, error) {
	return []*model.Patient{}, nil
}

func (f *fakePatientStore) ListByPatient(_ context.Context, _ int64) ([]*model.Patient, error) {
	return []*model.Patient{}, nil
}

func newPatientRouter(store *fakePatientStore) *gin.Engine {
	svc := crud.NewService[model.Patient](store, "patient", logger.NewLogger(nil))
	h := NewCRUDHandler[model.Patient, model.PatientRequest](svc)
	r := gin.New()
	h.Register(r.Group("/patients"))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePatientReturns201(t *testing.T) {
	r := newPatientRouter(newFakePatientStore())

	w := doJSON(r, http.MethodPost, "/patients", gin.H{"Sex": true, "Age": 9})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
}

func TestCreatePatientRejectsOutOfRangeAge(t *testing.T) {
	r := newPatientRouter(newFakePatientStore())

	w := doJSON(r, http.MethodPost, "/patients", gin.H{"Age": 200})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPatientNotFound(t *testing.T) {
	r := newPatientRouter(newFakePatientStore())

	w := doJSON(r, http.MethodGet, "/patients/42", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, apperrors.ErrNotFound, resp.Code)
	assert.Equal(t, "patient not found", resp.Message)
}

func TestRoundTripCreateGetDelete(t *testing.T) {
	store := newFakePatientStore()
	r := newPatientRouter(store)

	w := doJSON(r, http.MethodPost, "/patients", gin.H{"Age": 9})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/patients/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/patients/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListEnvelopeCarriesPagination(t *testing.T) {
	store := newFakePatientStore()
	r := newPatientRouter(store)
	doJSON(r, http.MethodPost, "/patients", gin.H{"Age": 9})

	w := doJSON(r, http.MethodGet, "/patients?skip=0&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data ListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.Data.Total)
	assert.Equal(t, 5, resp.Data.Limit)
}

type erroringConditionStore struct{}

func (erroringConditionStore) Create(_ context.Context, _ *model.HealthCondition) error {
	return errors.New("unexpected")
}

func (erroringConditionStore) Get(_ context.Context, _ string) (*model.HealthCondition, error) {
	return nil, errors.New("unexpected")
}

func (erroringConditionStore) Update(_ context.Context, _ string, _ map[string]interface{}) (*model.HealthCondition, error) {
	return nil, errors.New("unexpected")
}

func (erroringConditionStore) Delete(_ context.Context, _ string) error {
	return errors.New("unexpected")
}

func (erroringConditionStore) List(_ context.Context, _ model.Page) ([]*model.HealthCondition, int64, error) {
	return nil, 0, errors.New("unexpected")
}

func (erroringConditionStore) Latest(_ context.Context, _ int) ([]*model.HealthCondition, error) {
	return nil, errors.New("unexpected")
}

func (erroringConditionStore) ListByPatient(_ context.Context, _ int64) ([]*model.HealthCondition, error) {
	return nil, errors.New("unexpected")
}

func TestDependentCreateRequiresPatientID(t *testing.T) {
	svc := crud.NewService[model.HealthCondition](erroringConditionStore{}, "health condition", logger.NewLogger(nil)).
		WithPatientRef(nil)
	h := NewCRUDHandler[model.HealthCondition, model.HealthConditionRequest](svc)
	r := gin.New()
	h.Register(r.Group("/health-conditions"))

	w := doJSON(r, http.MethodPost, "/health-conditions", gin.H{"HighBP": true})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PatientID is required", resp.Message)
}

func TestReferentialRejectionMapsTo400(t *testing.T) {
	svc := crud.NewService[model.HealthCondition](erroringConditionStore{}, "health condition", logger.NewLogger(nil)).
		WithPatientRef(func(_ context.Context, _ int64) (bool, error) { return false, nil })
	h := NewCRUDHandler[model.HealthCondition, model.HealthConditionRequest](svc)
	r := gin.New()
	h.Register(r.Group("/health-conditions"))

	w := doJSON(r, http.MethodPost, "/health-conditions", gin.H{"PatientID": 999, "HighBP": true})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrReferential, resp.Code)
	assert.Contains(t, resp.Message, "does not exist")
}

// Referential rejections and plain bad requests share HTTP 400; the body
// code is what tells them apart.
func TestErrorCodeDistinguishes400s(t *testing.T) {
	svc := crud.NewService[model.HealthCondition](erroringConditionStore{}, "health condition", logger.NewLogger(nil)).
		WithPatientRef(nil)
	h := NewCRUDHandler[model.HealthCondition, model.HealthConditionRequest](svc)
	r := gin.New()
	h.Register(r.Group("/health-conditions"))

	w := doJSON(r, http.MethodPost, "/health-conditions", gin.H{"HighBP": true})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrBadRequest, resp.Code)
	assert.NotEqual(t, apperrors.ErrReferential, resp.Code)
}

func TestUnknownErrorHidesDetails(t *testing.T) {
	svc := crud.NewService[model.HealthCondition](erroringConditionStore{}, "health condition", logger.NewLogger(nil))
	h := NewCRUDHandler[model.HealthCondition, model.HealthConditionRequest](svc)
	r := gin.New()
	h.Register(r.Group("/health-conditions"))

	w := doJSON(r, http.MethodGet, "/health-conditions/abc", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "internal server error", resp.Message)
}

func TestHealthReportsDegradedStore(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"postgres": func(_ context.Context) error { return nil },
		"mongodb":  func(_ context.Context) error { return errors.New("down") },
	})
	r := gin.New()
	r.GET("/health", h.Health)

	w := doJSON(r, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp struct {
		Status string            `json:"status"`
		Stores map[string]string `json:"stores"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "degraded", resp.Status)
	assert.Equal(t, "unreachable", resp.Stores["mongodb"])
	assert.Equal(t, "ok", resp.Stores["postgres"])
}
