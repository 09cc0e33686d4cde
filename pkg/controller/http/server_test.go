package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	controller "github.com/fintech-ethics/themis/pkg/controller/http"
	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/repository/memory"
	"github.com/fintech-ethics/themis/pkg/usecase"
)

func testCatalog() *model.Catalog {
	return &model.Catalog{
		Questionnaires: []model.Questionnaire{
			{
				ID:   model.QuestionnaireRisk,
				Name: "AI Risk Identification",
				Mode: types.CombineWeighted,
				Categories: []model.Category{
					{
						ID:     "fairness",
						Name:   "Fairness",
						Weight: 1.0,
						Questions: []model.Question{
							{ID: "f1", Prompt: "Bias testing performed", Weight: 3},
							{ID: "f2", Prompt: "Proxy variables reviewed", Weight: 3},
							{ID: "f3", Prompt: "Outcomes monitored by segment", Weight: 2},
						},
						Recommendations: []string{"Run a proxy variable audit"},
					},
				},
			},
			{
				ID:   model.QuestionnaireChecklist,
				Name: "Ethical Assessment Checklist",
				Mode: types.CombineMean,
				Categories: []model.Category{
					{
						ID:   "oversight",
						Name: "Human Oversight",
						Questions: []model.Question{
							{ID: "6.1", Prompt: "Human review for high-stakes decisions", Priority: types.PriorityCritical},
							{ID: "6.2", Prompt: "Override mechanisms documented", Priority: types.PriorityHigh},
						},
					},
				},
			},
		},
	}
}

func newTestServer() *httptest.Server {
	uc := usecase.New(memory.New(), testCatalog(),
		usecase.WithClock(func() time.Time {
			return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
		}),
		usecase.WithVersion("test"),
	)
	return httptest.NewServer(controller.New(uc))
}

func createSession(t *testing.T, server *httptest.Server) string {
	t.Helper()

	resp, err := http.Post(server.URL+"/api/sessions", "application/json", nil)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusCreated)

	var body struct {
		SessionID string `json:"session_id"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	gt.Value(t, body.SessionID).NotEqual("")
	return body.SessionID
}

func TestCreateAndGetSession(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	resp, err := http.Get(server.URL + "/api/sessions/" + sid + "/")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		SessionID           string `json:"session_id"`
		RiskCompleted       bool   `json:"risk_completed"`
		GovernanceCompleted bool   `json:"governance_completed"`
		AssessmentCount     int    `json:"assessment_count"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	gt.Value(t, body.SessionID).Equal(sid)
	gt.B(t, body.RiskCompleted).False()
	gt.Number(t, body.AssessmentCount).Equal(0)
}

func TestGetUnknownSession(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/sessions/no-such-session/")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
}

func TestCatalogEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/catalog")
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		Questionnaires []struct {
			ID         string `json:"id"`
			Mode       string `json:"mode"`
			Categories []struct {
				ID        string `json:"id"`
				Questions []struct {
					ID string `json:"id"`
				} `json:"questions"`
			} `json:"categories"`
		} `json:"questionnaires"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	gt.Array(t, body.Questionnaires).Length(2)
	gt.Value(t, body.Questionnaires[0].ID).Equal("risk-identification")
	gt.Array(t, body.Questionnaires[0].Categories[0].Questions).Length(3)
}

func TestSubmitRisk(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	payload := map[string]any{
		"system_name":   "credit-scorer",
		"use_case":      "Consumer credit scoring",
		"jurisdictions": []string{"EU"},
		"answers": map[string]string{
			"f1": "compliant",
			"f2": "partial",
			"f3": "non_compliant",
		},
	}
	data, _ := json.Marshal(payload)

	resp, err := http.Post(server.URL+"/api/sessions/"+sid+"/risk", "application/json", bytes.NewReader(data))
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		OverallScore    float64             `json:"overall_score"`
		RiskLevel       string              `json:"risk_level"`
		EUHighRisk      bool                `json:"eu_high_risk"`
		Recommendations map[string][]string `json:"recommendations"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	gt.Number(t, body.OverallScore).Equal(56.3)
	gt.Value(t, body.RiskLevel).Equal("High")
	gt.B(t, body.EUHighRisk).True()
	gt.Map(t, body.Recommendations).HasKey("fairness")
}

func TestSubmitRiskValidation(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	t.Run("unknown question", func(t *testing.T) {
		data, _ := json.Marshal(map[string]any{
			"system_name": "credit-scorer",
			"answers":     map[string]string{"nope": "compliant"},
		})
		resp, err := http.Post(server.URL+"/api/sessions/"+sid+"/risk", "application/json", bytes.NewReader(data))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("missing system name", func(t *testing.T) {
		data, _ := json.Marshal(map[string]any{"answers": map[string]string{}})
		resp, err := http.Post(server.URL+"/api/sessions/"+sid+"/risk", "application/json", bytes.NewReader(data))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("unknown session", func(t *testing.T) {
		data, _ := json.Marshal(map[string]any{"system_name": "credit-scorer"})
		resp, err := http.Post(server.URL+"/api/sessions/missing/risk", "application/json", bytes.NewReader(data))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/api/sessions/"+sid+"/risk", "application/json", strings.NewReader("{"))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})
}

func TestSaveGovernance(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	data, _ := json.Marshal(map[string]any{
		"profile": map[string]string{"size": "mid", "primary_business": "lending"},
		"policies": map[string]string{
			"AI Ethics Policy":  "approved",
			"Model Risk Policy": "not_started",
		},
		"procedures": map[string]string{
			"Incident Response": "under_review",
		},
		"lifecycle_controls": map[string][]string{
			"development": {"bias testing"},
		},
	})

	req, err := http.NewRequest(http.MethodPut, server.URL+"/api/sessions/"+sid+"/governance", bytes.NewReader(data))
	gt.NoError(t, err).Required()
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		PoliciesDefined   int `json:"policies_defined"`
		PoliciesTotal     int `json:"policies_total"`
		ProceduresDefined int `json:"procedures_defined"`
		LifecycleControls int `json:"lifecycle_controls"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	gt.Number(t, body.PoliciesDefined).Equal(1)
	gt.Number(t, body.PoliciesTotal).Equal(2)
	gt.Number(t, body.ProceduresDefined).Equal(1)
	gt.Number(t, body.LifecycleControls).Equal(1)
}

func TestSubmitAssessment(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	data, _ := json.Marshal(map[string]any{
		"system_name": "fraud-detector",
		"answers": map[string]string{
			"6.1": "non_compliant",
			"6.2": "compliant",
		},
	})

	resp, err := http.Post(server.URL+"/api/sessions/"+sid+"/assessments", "application/json", bytes.NewReader(data))
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusOK)

	var body struct {
		OverallScore   float64 `json:"overall_score"`
		Readiness      string  `json:"readiness"`
		CriticalIssues int     `json:"critical_issues"`
		Attention      []struct {
			QuestionID string `json:"question_id"`
		} `json:"attention_items"`
	}
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
	// critical 3 + high 2 = 5 total, earned 2 -> 40.0
	gt.Number(t, body.OverallScore).Equal(40.0)
	gt.Value(t, body.Readiness).Equal("Not Ready")
	gt.Number(t, body.CriticalIssues).Equal(1)
	gt.Array(t, body.Attention).Length(1)
	gt.Value(t, body.Attention[0].QuestionID).Equal("6.1")
}

func TestReportEndpoint(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	t.Run("default format is JSON", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/sessions/" + sid + "/report")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, resp.Header.Get("Content-Type")).Equal("application/json")

		var body map[string]json.RawMessage
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&body)).Required()
		gt.Map(t, body).HasKey("report_metadata")
		gt.Map(t, body).HasKey("risk_assessment")
		gt.Map(t, body).HasKey("governance_framework")
		gt.Map(t, body).HasKey("ethical_assessments")
	})

	t.Run("markdown format", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/sessions/" + sid + "/report?format=markdown")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		gt.Number(t, resp.StatusCode).Equal(http.StatusOK)
		gt.Value(t, resp.Header.Get("Content-Type")).Equal("text/markdown; charset=utf-8")
	})

	t.Run("unknown format", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/sessions/" + sid + "/report?format=yaml")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		gt.Number(t, resp.StatusCode).Equal(http.StatusBadRequest)
	})

	t.Run("unknown session", func(t *testing.T) {
		resp, err := http.Get(server.URL + "/api/sessions/missing/report")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		gt.Number(t, resp.StatusCode).Equal(http.StatusNotFound)
	})
}

func TestDeleteSession(t *testing.T) {
	server := newTestServer()
	defer server.Close()

	sid := createSession(t, server)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/sessions/"+sid+"/", nil)
	gt.NoError(t, err).Required()

	resp, err := http.DefaultClient.Do(req)
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	gt.Number(t, resp.StatusCode).Equal(http.StatusNoContent)

	getResp, err := http.Get(server.URL + "/api/sessions/" + sid + "/")
	gt.NoError(t, err).Required()
	defer getResp.Body.Close()
	gt.Number(t, getResp.StatusCode).Equal(http.StatusNotFound)
}
