package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curalink/curalink/backend/api/internal/models"
)

func TestOnboardingStatus(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "res@example.com", models.RoleResearcher)

	w := env.do(t, "GET", "/api/v1/onboarding/status", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, false, body["has_onboarded"])
	require.Equal(t, float64(models.RoleResearcher), body["role"])
}

func TestOnboarding_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, "GET", "/api/v1/onboarding/status", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid token", decodeBody(t, w)["error"])
}

func TestResearcherProfile_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "res@example.com", models.RoleResearcher)

	w := env.do(t, "POST", "/api/v1/onboarding/researcher/", token, map[string]interface{}{
		"condition": "ALS",
		"location":  "Berlin",
		"tags":      []string{"neurology", "trials"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, "ALS", body["condition"])
	require.Equal(t, []interface{}{"neurology", "trials"}, body["tags"])

	// profile creation flips the onboarding flag
	w = env.do(t, "GET", "/api/v1/onboarding/status", token, nil)
	require.Equal(t, true, decodeBody(t, w)["has_onboarded"])

	w = env.do(t, "PUT", "/api/v1/onboarding/researcher/", token, map[string]interface{}{
		"condition": "ALS",
		"location":  "Munich",
		"tags":      []string{"neurology"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, "GET", "/api/v1/onboarding/researcher/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	require.Equal(t, "Munich", body["location"])
	require.Equal(t, []interface{}{"neurology"}, body["tags"])
}

func TestResearcherRoutes_PatientForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "pat@example.com", models.RolePatient)

	w := env.do(t, "POST", "/api/v1/onboarding/researcher/", token, map[string]interface{}{"condition": "x"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Only researchers can access this route", decodeBody(t, w)["error"])
}

func TestPatientRoutes_ResearcherForbidden(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "res@example.com", models.RoleResearcher)

	w := env.do(t, "POST", "/api/v1/onboarding/patient/", token, map[string]interface{}{"condition": "x"})
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Only patients can access this route", decodeBody(t, w)["error"])
}

func TestPatientProfile_Lifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "pat@example.com", models.RolePatient)

	w := env.do(t, "GET", "/api/v1/onboarding/patient/", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Profile not found", decodeBody(t, w)["error"])

	w = env.do(t, "POST", "/api/v1/onboarding/patient/", token, map[string]interface{}{
		"condition": "MS",
		"location":  "Hamburg",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, "GET", "/api/v1/onboarding/patient/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MS", decodeBody(t, w)["condition"])
}
