package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medwatch/internal/handlers"
	"medwatch/internal/models"
	"medwatch/internal/repositories"
	"medwatch/internal/routes"
	"medwatch/internal/services"
	"medwatch/internal/utils"
)

type testAPI struct {
	router *gin.Engine
	store  *repositories.MemoryStore
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repositories.NewMemoryStore()
	tokens := utils.TokenConfig{
		Secret:   []byte("api-test-secret"),
		Issuer:   "medwatch",
		Audience: "medwatch-clients",
		Expiry:   time.Hour,
	}

	authService := services.NewAuthService(services.NewStaticCredentialVerifier(), tokens)
	patientService := services.NewPatientService(store.Patients())
	deviceService := services.NewDeviceService(store.Devices(), store.Vitals())
	vitalService := services.NewVitalService(store.Vitals(), store.Patients(), store.Devices())

	router := gin.New()
	routes.RegisterRoutes(
		router,
		tokens,
		handlers.NewAuthHandler(authService),
		handlers.NewPatientHandler(patientService),
		handlers.NewDeviceHandler(deviceService),
		handlers.NewVitalHandler(vitalService),
	)

	return &testAPI{router: router, store: store}
}

func (api *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)
	return rec
}

func (api *testAPI) login(t *testing.T, username, password string) string {
	t.Helper()

	rec := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Token)
	return body.Token
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func patientPayload(name string) gin.H {
	return gin.H{
		"full_name":    name,
		"age":          61,
		"gender":       "M",
		"diagnosis":    "arrhythmia",
		"last_checkup": "2026-08-01T00:00:00Z",
	}
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t)

	t.Run("valid admin credentials", func(t *testing.T) {
		token := api.login(t, "doctor", "med123")
		assert.NotEmpty(t, token)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
			"username": "doctor",
			"password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid credentials")
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/auth/login", "", gin.H{"username": "doctor"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestSecureVitals(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/auth/secure-vitals", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := api.login(t, "user", "userpass")
	rec = api.do(t, http.MethodGet, "/api/auth/secure-vitals", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are authorized!")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/patients/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/patients", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminScenario_CreateAndListPatient(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "doctor", "med123")

	rec := api.do(t, http.MethodPost, "/api/patients", token, patientPayload("John Carter"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decodeJSON[models.Patient](t, rec)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "/api/patients/"+created.ID.String(), rec.Header().Get("Location"))

	rec = api.do(t, http.MethodGet, "/api/patients", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	listed := decodeJSON[[]models.Patient](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, "John Carter", listed[0].FullName)
}

func TestUserRoleScenario_WritesForbidden(t *testing.T) {
	api := newTestAPI(t)
	userToken := api.login(t, "user", "userpass")

	rec := api.do(t, http.MethodPost, "/api/patients", userToken, patientPayload("Denied"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// reads remain open to the User role
	rec = api.do(t, http.MethodGet, "/api/patients", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/medicaldevices", userToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/medicaldevices", userToken, gin.H{
		"device_name": "X",
		"device_type": "monitor",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = api.do(t, http.MethodDelete, "/api/vitals/"+uuid.NewString(), userToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPatientCRUD(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "doctor", "med123")

	rec := api.do(t, http.MethodPost, "/api/patients", token, patientPayload("Jane Doe"))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeJSON[models.Patient](t, rec)

	t.Run("get by id", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients/"+created.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeJSON[models.Patient](t, rec)
		assert.Equal(t, created.FullName, got.FullName)
		assert.Equal(t, created.Age, got.Age)
	})

	t.Run("get missing id", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients/"+uuid.NewString(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("get invalid id", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation error map", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/api/patients", token, gin.H{"age": 30})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body struct {
			Errors map[string]string `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Errors, "FullName")
		assert.Contains(t, body.Errors, "Gender")
	})

	t.Run("update", func(t *testing.T) {
		payload := patientPayload("Jane Updated")
		payload["id"] = created.ID.String()
		rec := api.do(t, http.MethodPut, "/api/patients/"+created.ID.String(), token, payload)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decodeJSON[models.Patient](t, rec)
		assert.Equal(t, "Jane Updated", updated.FullName)
	})

	t.Run("update id mismatch", func(t *testing.T) {
		payload := patientPayload("Mismatch")
		payload["id"] = uuid.NewString()
		rec := api.do(t, http.MethodPut, "/api/patients/"+created.ID.String(), token, payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update missing", func(t *testing.T) {
		missing := uuid.NewString()
		payload := patientPayload("Ghost")
		payload["id"] = missing
		rec := api.do(t, http.MethodPut, "/api/patients/"+missing, token, payload)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete then get", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/api/patients/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = api.do(t, http.MethodGet, "/api/patients/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = api.do(t, http.MethodDelete, "/api/patients/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPatientListPagination(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "doctor", "med123")

	for i := 0; i < 12; i++ {
		rec := api.do(t, http.MethodPost, "/api/patients", token, patientPayload(fmt.Sprintf("Patient %02d", i)))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	t.Run("defaults applied", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		listed := decodeJSON[[]models.Patient](t, rec)
		assert.Len(t, listed, 10)
		assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))
		assert.Equal(t, "1", rec.Header().Get("X-Page-Number"))
		assert.Equal(t, "10", rec.Header().Get("X-Page-Size"))
	})

	t.Run("non-positive inputs clamp to defaults", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients?pageNumber=0&pageSize=-4", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		listed := decodeJSON[[]models.Patient](t, rec)
		assert.Len(t, listed, 10)
		assert.Equal(t, "1", rec.Header().Get("X-Page-Number"))
		assert.Equal(t, "10", rec.Header().Get("X-Page-Size"))
	})

	t.Run("second page", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients?pageNumber=2&pageSize=10", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		listed := decodeJSON[[]models.Patient](t, rec)
		assert.Len(t, listed, 2)
		assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))
		assert.Equal(t, "2", rec.Header().Get("X-Page-Number"))
	})

	t.Run("small page size never exceeded", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/patients?pageNumber=1&pageSize=3", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		listed := decodeJSON[[]models.Patient](t, rec)
		assert.Len(t, listed, 3)
		assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))
	})
}

func TestDeviceAndVitalsFlow(t *testing.T) {
	api := newTestAPI(t)
	token := api.login(t, "doctor", "med123")

	rec := api.do(t, http.MethodPost, "/api/patients", token, patientPayload("Monitored"))
	require.Equal(t, http.StatusCreated, rec.Code)
	patient := decodeJSON[models.Patient](t, rec)

	rec = api.do(t, http.MethodPost, "/api/medicaldevices", token, gin.H{
		"device_name": "Ward Monitor 7",
		"device_type": "monitor",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	device := decodeJSON[models.MedicalDevice](t, rec)
	assert.Equal(t, "/api/medicaldevices/"+device.ID.String(), rec.Header().Get("Location"))

	vitalPayload := gin.H{
		"patient_id":        patient.ID.String(),
		"device_id":         device.ID.String(),
		"recorded_at":       "2026-08-31T08:00:00Z",
		"heart_rate":        72,
		"systolic":          118,
		"diastolic":         76,
		"oxygen_saturation": 98,
		"temperature":       36.9,
	}

	rec = api.do(t, http.MethodPost, "/api/vitals", token, vitalPayload)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	vital := decodeJSON[models.Vital](t, rec)

	t.Run("nested listing by device", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/medicaldevices/"+device.ID.String()+"/vitals", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		listed := decodeJSON[[]models.Vital](t, rec)
		require.Len(t, listed, 1)
		assert.Equal(t, vital.ID, listed[0].ID)
	})

	t.Run("nested listing missing device is 404", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/medicaldevices/"+uuid.NewString()+"/vitals", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("patient-scoped listing", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/vitals/patient/"+patient.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		listed := decodeJSON[[]models.Vital](t, rec)
		assert.Len(t, listed, 1)
	})

	t.Run("patient-scoped listing of unknown patient is empty, not 404", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/api/vitals/patient/"+uuid.NewString(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		listed := decodeJSON[[]models.Vital](t, rec)
		assert.Empty(t, listed)
	})

	t.Run("vital create with unknown reference", func(t *testing.T) {
		bad := gin.H{}
		for k, v := range vitalPayload {
			bad[k] = v
		}
		bad["device_id"] = uuid.NewString()
		rec := api.do(t, http.MethodPost, "/api/vitals", token, bad)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("device delete cascades vitals", func(t *testing.T) {
		rec := api.do(t, http.MethodDelete, "/api/medicaldevices/"+device.ID.String(), token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = api.do(t, http.MethodGet, "/api/vitals/"+vital.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = api.do(t, http.MethodGet, "/api/medicaldevices/"+device.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
