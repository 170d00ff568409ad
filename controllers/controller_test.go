package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"CareTriage/db"
	"CareTriage/services"
	"CareTriage/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctl := New(services.New(db.NewMemoryStore("caretriage"), nil))
	ctl.System(r)
	ctl.Patient(r)
	ctl.Appointment(r)
	ctl.Note(r)
	ctl.SymptomCheck(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) (int, []byte) {
	t.Helper()
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code, w.Body.Bytes()
}

func decodeObject(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func decodeList(t *testing.T, raw []byte) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func createPatient(t *testing.T, r *gin.Engine, body string) string {
	t.Helper()
	code, raw := do(t, r, http.MethodPost, "/api/patients", body)
	require.Equal(t, http.StatusOK, code, string(raw))
	id, _ := decodeObject(t, raw)["_id"].(string)
	require.Len(t, id, 24)
	return id
}

func TestRoot(t *testing.T) {
	r := newRouter(t)
	code, raw := do(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, decodeObject(t, raw)["message"], "running")
}

func TestTestStore(t *testing.T) {
	r := newRouter(t)
	code, raw := do(t, r, http.MethodGet, "/test", "")
	require.Equal(t, http.StatusOK, code)

	body := decodeObject(t, raw)
	assert.Equal(t, "connected", body["database"])
	assert.Equal(t, "caretriage", body["database_name"])
	assert.Equal(t, "not set", body["database_url"])
	assert.Equal(t, []interface{}{}, body["collections"])
}

func TestSchema(t *testing.T) {
	r := newRouter(t)
	code, raw := do(t, r, http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, code)

	list := decodeList(t, raw)
	require.Len(t, list, 3)
	assert.Equal(t, "Patient", list[0]["name"])
	assert.Equal(t, "object", list[0]["schema"].(map[string]interface{})["type"])
}

func TestPatientEndpoints(t *testing.T) {
	r := newRouter(t)
	id := createPatient(t, r, `{"name":"Ada Lovelace","email":"ada@example.com","dob":"1815-12-10"}`)
	createPatient(t, r, `{"name":"Grace Hopper"}`)

	code, raw := do(t, r, http.MethodGet, "/api/patients/"+id, "")
	require.Equal(t, http.StatusOK, code)
	p := decodeObject(t, raw)
	assert.Equal(t, "Ada Lovelace", p["name"])
	assert.Equal(t, "1815-12-10", p["dob"])
	assert.Equal(t, []interface{}{}, p["conditions"])

	code, raw = do(t, r, http.MethodGet, "/api/patients?q=ada", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeList(t, raw), 1)

	code, raw = do(t, r, http.MethodGet, "/api/patients", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeList(t, raw), 2)
}

func TestPatientEndpoints_Errors(t *testing.T) {
	r := newRouter(t)

	code, raw := do(t, r, http.MethodGet, "/api/patients/"+primitive.NewObjectID().Hex(), "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, string(util.NotFound), decodeObject(t, raw)["kind"])

	code, raw = do(t, r, http.MethodGet, "/api/patients/bogus", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(util.InvalidIdentifier), decodeObject(t, raw)["kind"])

	code, raw = do(t, r, http.MethodPost, "/api/patients", `{"email":"bad"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, decodeObject(t, raw)["violations"], 2)

	code, _ = do(t, r, http.MethodPost, "/api/patients", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAppointmentEndpoints(t *testing.T) {
	r := newRouter(t)
	id := createPatient(t, r, `{"name":"Ada Lovelace"}`)

	code, raw := do(t, r, http.MethodPost, "/api/appointments",
		`{"patient_id":"`+id+`","scheduled_at":"2026-11-02T09:00:00Z","reason":"checkup"}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	a := decodeObject(t, raw)
	assert.Equal(t, "scheduled", a["status"])
	assert.Equal(t, "2026-11-02T09:00:00Z", a["scheduled_at"])
	assert.NotEmpty(t, a["created_at"])

	code, _ = do(t, r, http.MethodPost, "/api/appointments",
		`{"patient_id":"`+id+`","scheduled_at":"2026-11-01T09:00:00Z","reason":"earlier","status":"cancelled"}`)
	require.Equal(t, http.StatusOK, code)

	code, raw = do(t, r, http.MethodGet, "/api/appointments?patient_id="+id, "")
	require.Equal(t, http.StatusOK, code)
	list := decodeList(t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, "earlier", list[0]["reason"])

	code, raw = do(t, r, http.MethodGet, "/api/appointments?status=cancelled", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeList(t, raw), 1)
}

func TestAppointmentEndpoints_UnknownPatient(t *testing.T) {
	r := newRouter(t)
	code, raw := do(t, r, http.MethodPost, "/api/appointments",
		`{"patient_id":"`+primitive.NewObjectID().Hex()+`","scheduled_at":"2026-11-02T09:00:00Z","reason":"checkup"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(util.ReferenceNotFound), decodeObject(t, raw)["kind"])

	code, raw = do(t, r, http.MethodGet, "/api/appointments", "")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, decodeList(t, raw))
}

func TestNoteEndpoints(t *testing.T) {
	r := newRouter(t)
	id := createPatient(t, r, `{"name":"Ada Lovelace"}`)

	code, raw := do(t, r, http.MethodPost, "/api/notes", `{"patient_id":"`+id+`","content":"Stable","tags":["vitals"]}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	assert.Equal(t, []interface{}{"vitals"}, decodeObject(t, raw)["tags"])

	code, raw = do(t, r, http.MethodGet, "/api/notes?patient_id="+id, "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, decodeList(t, raw), 1)

	code, raw = do(t, r, http.MethodGet, "/api/notes", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(util.MissingField), decodeObject(t, raw)["kind"])

	code, _ = do(t, r, http.MethodPost, "/api/notes", `{"patient_id":"nope","content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSymptomCheckEndpoint(t *testing.T) {
	r := newRouter(t)

	code, raw := do(t, r, http.MethodPost, "/api/symptom-check", `{"age":30,"symptoms":["Chest Pain","shortness of breath"]}`)
	require.Equal(t, http.StatusOK, code, string(raw))
	body := decodeObject(t, raw)
	assert.Equal(t, "high", body["risk"])
	assert.NotEmpty(t, body["guidance"])
	input := body["input"].(map[string]interface{})
	assert.Equal(t, float64(1), input["duration_days"])
	assert.Equal(t, []interface{}{"Chest Pain", "shortness of breath"}, input["symptoms"])

	code, raw = do(t, r, http.MethodPost, "/api/symptom-check", `{"age":30,"symptoms":[]}`)
	require.Equal(t, http.StatusOK, code)
	body = decodeObject(t, raw)
	assert.Equal(t, []interface{}{}, body["likely_conditions"])
	assert.Equal(t, "low", body["risk"])

	code, raw = do(t, r, http.MethodPost, "/api/symptom-check", `{"age":150,"symptoms":["fever"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, string(util.OutOfRange), decodeObject(t, raw)["kind"])
}
