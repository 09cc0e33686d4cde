package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/fintech-ethics/themis/pkg/domain/model"
	"github.com/fintech-ethics/themis/pkg/domain/types"
	"github.com/fintech-ethics/themis/pkg/scoring"
	"github.com/fintech-ethics/themis/pkg/service/render"
	"github.com/fintech-ethics/themis/pkg/usecase"
	"github.com/fintech-ethics/themis/pkg/utils/errutil"
	"github.com/fintech-ethics/themis/pkg/utils/safe"
)

const timeLayout = time.RFC3339

func sessionID(r *http.Request) types.SessionID {
	return types.SessionID(chi.URLParam(r, "sessionID"))
}

func decodeBody(r *http.Request, v any) error {
	defer safe.Close(r.Context(), r.Body)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return goerr.Wrap(err, "failed to decode request body")
	}
	return nil
}

// --- catalog ---

type catalogQuestion struct {
	ID       string  `json:"id"`
	Prompt   string  `json:"prompt"`
	Weight   float64 `json:"weight,omitempty"`
	Priority string  `json:"priority,omitempty"`
}

type catalogCategory struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Weight      float64           `json:"weight,omitempty"`
	Questions   []catalogQuestion `json:"questions"`
}

type catalogQuestionnaire struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Mode       string            `json:"mode"`
	Categories []catalogCategory `json:"categories"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	catalog := s.uc.Catalog()

	questionnaires := make([]catalogQuestionnaire, 0, len(catalog.Questionnaires))
	for _, qn := range catalog.Questionnaires {
		cq := catalogQuestionnaire{
			ID:         qn.ID.String(),
			Name:       qn.Name,
			Mode:       qn.Mode.String(),
			Categories: make([]catalogCategory, 0, len(qn.Categories)),
		}
		for _, cat := range qn.Categories {
			cc := catalogCategory{
				ID:          cat.ID.String(),
				Name:        cat.Name,
				Description: cat.Description,
				Weight:      cat.Weight,
				Questions:   make([]catalogQuestion, 0, len(cat.Questions)),
			}
			for _, q := range cat.Questions {
				cc.Questions = append(cc.Questions, catalogQuestion{
					ID:       q.ID.String(),
					Prompt:   q.Prompt,
					Weight:   q.Weight,
					Priority: q.Priority.String(),
				})
			}
			cq.Categories = append(cq.Categories, cc)
		}
		questionnaires = append(questionnaires, cq)
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"questionnaires": questionnaires,
	})
}

// --- sessions ---

type sessionResponse struct {
	SessionID           string `json:"session_id"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
	RiskCompleted       bool   `json:"risk_completed"`
	GovernanceCompleted bool   `json:"governance_completed"`
	AssessmentCount     int    `json:"assessment_count"`
}

func toSessionResponse(session *model.Session) sessionResponse {
	return sessionResponse{
		SessionID:           session.ID.String(),
		CreatedAt:           session.CreatedAt.Format(timeLayout),
		UpdatedAt:           session.UpdatedAt.Format(timeLayout),
		RiskCompleted:       session.RiskAssessment != nil,
		GovernanceCompleted: session.GovernancePlan != nil,
		AssessmentCount:     len(session.Assessments),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.uc.Session.Create(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, toSessionResponse(session))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.uc.Session.Get(r.Context(), sessionID(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, toSessionResponse(session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.uc.Session.Delete(r.Context(), sessionID(r)); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- risk assessment ---

type metaRequest struct {
	SystemName      string   `json:"system_name"`
	Assessor        string   `json:"assessor"`
	UseCase         string   `json:"use_case"`
	DeploymentStage string   `json:"deployment_stage"`
	Jurisdictions   []string `json:"jurisdictions"`
	CustomerTypes   []string `json:"customer_types"`
}

func (m *metaRequest) toMeta() model.AssessmentMeta {
	return model.AssessmentMeta{
		SystemName:      m.SystemName,
		Assessor:        m.Assessor,
		UseCase:         m.UseCase,
		DeploymentStage: m.DeploymentStage,
		Jurisdictions:   m.Jurisdictions,
		CustomerTypes:   m.CustomerTypes,
	}
}

func toAnswerSet(raw map[string]string) model.AnswerSet {
	answers := make(model.AnswerSet, len(raw))
	for qid, status := range raw {
		answers[types.QuestionID(qid)] = types.AnswerStatus(status)
	}
	return answers
}

type riskRequest struct {
	metaRequest
	Answers map[string]string `json:"answers"`
}

type categoryScoreResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Level string  `json:"level"`
}

type riskResponse struct {
	OverallScore    float64                 `json:"overall_score"`
	RiskLevel       string                  `json:"risk_level"`
	CriticalIssues  int                     `json:"critical_issues"`
	EUHighRisk      bool                    `json:"eu_high_risk"`
	Categories      []categoryScoreResponse `json:"categories"`
	Recommendations map[string][]string     `json:"recommendations,omitempty"`
}

func (s *Server) handleSubmitRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeBody(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Risk.Submit(r.Context(), sessionID(r), &usecase.RiskInput{
		Meta:    req.toMeta(),
		Answers: toAnswerSet(req.Answers),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := riskResponse{
		OverallScore:   scoring.Round1(assessment.OverallScore),
		RiskLevel:      assessment.RiskLevel.RiskLabel(),
		CriticalIssues: assessment.CriticalIssues,
		EUHighRisk:     assessment.EUHighRisk,
		Categories:     make([]categoryScoreResponse, 0, len(assessment.CategoryResults)),
	}
	for _, cr := range assessment.CategoryResults {
		resp.Categories = append(resp.Categories, categoryScoreResponse{
			ID:    cr.CategoryID.String(),
			Name:  cr.Name,
			Score: scoring.Round1(cr.Score),
			Level: cr.Tier.RiskLabel(),
		})
	}
	if len(assessment.Recommendations) > 0 {
		resp.Recommendations = make(map[string][]string, len(assessment.Recommendations))
		for catID, recs := range assessment.Recommendations {
			resp.Recommendations[catID.String()] = recs
		}
	}

	respondJSON(w, r, http.StatusOK, resp)
}

// --- governance ---

type reportingRequest struct {
	Frequency string   `json:"frequency"`
	Content   []string `json:"content"`
}

type governanceRequest struct {
	Profile struct {
		Size             string `json:"size"`
		PrimaryBusiness  string `json:"primary_business"`
		RegulatoryStatus string `json:"regulatory_status"`
		AIMaturity       string `json:"ai_maturity"`
	} `json:"profile"`
	Structure struct {
		AIOfficer          string   `json:"ai_officer"`
		ExecutiveSponsor   string   `json:"executive_sponsor"`
		RiskOwner          string   `json:"risk_owner"`
		EthicsOwner        string   `json:"ethics_owner"`
		HasEthicsCommittee bool     `json:"has_ethics_committee"`
		HasModelCommittee  bool     `json:"has_model_committee"`
		HasDataCommittee   bool     `json:"has_data_committee"`
		FirstLine          []string `json:"first_line"`
		SecondLine         []string `json:"second_line"`
		ThirdLine          []string `json:"third_line"`
	} `json:"structure"`
	Policies       map[string]string `json:"policies"`
	Procedures     map[string]string `json:"procedures"`
	RiskManagement struct {
		Taxonomy  []string          `json:"taxonomy"`
		Approach  string            `json:"approach"`
		Frequency string            `json:"frequency"`
		Appetite  map[string]string `json:"appetite"`
	} `json:"risk_management"`
	LifecycleControls map[string][]string `json:"lifecycle_controls"`
	Monitoring        struct {
		KPIs                []string         `json:"kpis"`
		BoardReporting      reportingRequest `json:"board_reporting"`
		ManagementReporting reportingRequest `json:"management_reporting"`
		InternalAudit       bool             `json:"internal_audit"`
		ExternalAudit       bool             `json:"external_audit"`
		RegulatoryExamPrep  bool             `json:"regulatory_exam_prep"`
	} `json:"monitoring"`
}

func (req *governanceRequest) toPlan() *model.GovernancePlan {
	plan := &model.GovernancePlan{
		Profile: model.OrgProfile{
			Size:             req.Profile.Size,
			PrimaryBusiness:  req.Profile.PrimaryBusiness,
			RegulatoryStatus: req.Profile.RegulatoryStatus,
			AIMaturity:       req.Profile.AIMaturity,
		},
		Structure: model.GovernanceStructure{
			AIOfficer:          req.Structure.AIOfficer,
			ExecutiveSponsor:   req.Structure.ExecutiveSponsor,
			RiskOwner:          req.Structure.RiskOwner,
			EthicsOwner:        req.Structure.EthicsOwner,
			HasEthicsCommittee: req.Structure.HasEthicsCommittee,
			HasModelCommittee:  req.Structure.HasModelCommittee,
			HasDataCommittee:   req.Structure.HasDataCommittee,
			FirstLine:          req.Structure.FirstLine,
			SecondLine:         req.Structure.SecondLine,
			ThirdLine:          req.Structure.ThirdLine,
		},
		RiskManagement: model.RiskManagementPlan{
			Taxonomy:  req.RiskManagement.Taxonomy,
			Approach:  req.RiskManagement.Approach,
			Frequency: req.RiskManagement.Frequency,
			Appetite:  req.RiskManagement.Appetite,
		},
		LifecycleControls: req.LifecycleControls,
		Monitoring: model.MonitoringPlan{
			KPIs: req.Monitoring.KPIs,
			BoardReporting: model.ReportingCadence{
				Frequency: req.Monitoring.BoardReporting.Frequency,
				Content:   req.Monitoring.BoardReporting.Content,
			},
			ManagementReporting: model.ReportingCadence{
				Frequency: req.Monitoring.ManagementReporting.Frequency,
				Content:   req.Monitoring.ManagementReporting.Content,
			},
			InternalAudit:      req.Monitoring.InternalAudit,
			ExternalAudit:      req.Monitoring.ExternalAudit,
			RegulatoryExamPrep: req.Monitoring.RegulatoryExamPrep,
		},
	}
	if len(req.Policies) > 0 {
		plan.Policies = make(map[string]types.PolicyStatus, len(req.Policies))
		for name, status := range req.Policies {
			plan.Policies[name] = types.PolicyStatus(status)
		}
	}
	if len(req.Procedures) > 0 {
		plan.Procedures = make(map[string]types.PolicyStatus, len(req.Procedures))
		for name, status := range req.Procedures {
			plan.Procedures[name] = types.PolicyStatus(status)
		}
	}
	return plan
}

type governanceResponse struct {
	PoliciesDefined   int `json:"policies_defined"`
	PoliciesTotal     int `json:"policies_total"`
	ProceduresDefined int `json:"procedures_defined"`
	ProceduresTotal   int `json:"procedures_total"`
	LifecycleControls int `json:"lifecycle_controls"`
}

func (s *Server) handleSaveGovernance(w http.ResponseWriter, r *http.Request) {
	var req governanceRequest
	if err := decodeBody(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	summary, err := s.uc.Governance.Save(r.Context(), sessionID(r), req.toPlan())
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, governanceResponse{
		PoliciesDefined:   summary.PoliciesDefined,
		PoliciesTotal:     summary.PoliciesTotal,
		ProceduresDefined: summary.ProceduresDefined,
		ProceduresTotal:   summary.ProceduresTotal,
		LifecycleControls: summary.LifecycleControls,
	})
}

// --- ethical assessments ---

type assessmentRequest struct {
	metaRequest
	Answers map[string]string `json:"answers"`
}

type attentionItemResponse struct {
	QuestionID string `json:"question_id"`
	Section    string `json:"section"`
	Prompt     string `json:"prompt"`
	Priority   string `json:"priority"`
	Status     string `json:"status"`
}

type assessmentResponse struct {
	OverallScore   float64                 `json:"overall_score"`
	Readiness      string                  `json:"readiness"`
	CriticalIssues int                     `json:"critical_issues"`
	Sections       []categoryScoreResponse `json:"sections"`
	Attention      []attentionItemResponse `json:"attention_items,omitempty"`
}

func (s *Server) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentRequest
	if err := decodeBody(r, &req); err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	record, err := s.uc.Assessment.Submit(r.Context(), sessionID(r), &usecase.ChecklistInput{
		Meta:    req.toMeta(),
		Answers: toAnswerSet(req.Answers),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := assessmentResponse{
		OverallScore:   scoring.Round1(record.OverallScore),
		Readiness:      record.Readiness.ReadinessLabel(),
		CriticalIssues: record.CriticalIssues,
		Sections:       make([]categoryScoreResponse, 0, len(record.SectionResults)),
	}
	for _, sr := range record.SectionResults {
		resp.Sections = append(resp.Sections, categoryScoreResponse{
			ID:    sr.CategoryID.String(),
			Name:  sr.Name,
			Score: scoring.Round1(sr.Score),
			Level: sr.Tier.ChecklistLabel(),
		})
	}
	for _, item := range record.AttentionItems {
		resp.Attention = append(resp.Attention, attentionItemResponse{
			QuestionID: item.QuestionID.String(),
			Section:    item.CategoryID.String(),
			Prompt:     item.Prompt,
			Priority:   item.Priority.String(),
			Status:     item.Status.String(),
		})
	}

	respondJSON(w, r, http.StatusOK, resp)
}

// --- report ---

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := render.Format(r.URL.Query().Get("format"))

	data, contentType, err := s.uc.Report.Export(r.Context(), sessionID(r), format)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	safe.Write(r.Context(), w, data)
}
