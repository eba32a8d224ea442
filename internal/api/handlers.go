package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medrisk-server/internal/cache"
	"github.com/medrisk-server/internal/domain"
	"github.com/medrisk-server/internal/feedback"
)

const serverVersion = "1.0.0"

type riskRequest struct {
	PatientID  string                    `json:"patient_id,omitempty"`
	Medication domain.MedicationIdentity `json:"medication"`
	Vitals     []domain.VitalSnapshot    `json:"vitals"`
	Labs       []domain.LabSnapshot      `json:"labs"`
	Narrate    bool                      `json:"narrate,omitempty"`
}

type riskResponse struct {
	AssessmentID string                      `json:"assessment_id,omitempty"`
	Digest       string                      `json:"digest"`
	Result       domain.MedicationRiskResult `json:"result"`
	Narration    string                      `json:"narration,omitempty"`
}

type interactionsRequest struct {
	PatientID   string                      `json:"patient_id,omitempty"`
	Medications []domain.MedicationIdentity `json:"medications"`
	Narrate     bool                        `json:"narrate,omitempty"`
}

type interactionsResponse struct {
	AssessmentID string                       `json:"assessment_id,omitempty"`
	Digest       string                       `json:"digest"`
	Interactions []domain.DetectedInteraction `json:"interactions"`
	Count        int                          `json:"count"`
	Narration    string                       `json:"narration,omitempty"`
}

type contraindicationsRequest struct {
	Medication domain.MedicationIdentity `json:"medication"`
	Conditions []string                  `json:"conditions"`
}

type contraindicationsResponse struct {
	Medication string                       `json:"medication"`
	Hits       []domain.ContraindicationHit `json:"hits"`
	Count      int                          `json:"count"`
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "healthy",
		"timestamp":    time.Now().UTC(),
		"version":      serverVersion,
		"catalog_size": s.engine.Catalog().Len(),
	})
}

// handleRisk evaluates single-medication risk from current vitals and labs.
func (s *Server) handleRisk(c *gin.Context) {
	var req riskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Medication.GenericName == "" && req.Medication.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "medication name or generic_name is required"})
		return
	}

	digest, ok := s.requestDigest(c, "risk", req)
	if !ok {
		return
	}
	if body, hit := s.results.Get(digest); hit {
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	result := s.engine.EvaluateRisk(req.Medication, req.Vitals, req.Labs)

	resp := riskResponse{
		Digest: digest,
		Result: result,
	}
	resp.AssessmentID = s.persistAssessment(c, domain.RiskAssessment, req.PatientID, digest, result.Level.String(), result)

	if req.Narrate && s.narrator != nil {
		text, err := s.narrator.NarrateRisk(c.Request.Context(), result)
		if err != nil {
			// Narration never fails an evaluation
			s.log.WithError(err).Warn("Risk narration failed")
		} else {
			resp.Narration = text
		}
	}

	s.respondCached(c, digest, resp)
}

// handleInteractions detects catalog interactions across a medication list.
func (s *Server) handleInteractions(c *gin.Context) {
	var req interactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	digest, ok := s.requestDigest(c, "interactions", req)
	if !ok {
		return
	}
	if body, hit := s.results.Get(digest); hit {
		c.Data(http.StatusOK, "application/json", body)
		return
	}

	interactions := s.engine.EvaluateInteractions(req.Medications)
	if interactions == nil {
		interactions = []domain.DetectedInteraction{}
	}

	resp := interactionsResponse{
		Digest:       digest,
		Interactions: interactions,
		Count:        len(interactions),
	}
	resp.AssessmentID = s.persistAssessment(c, domain.InteractionAssessment, req.PatientID, digest, highestSeverity(interactions), interactions)

	if req.Narrate && s.narrator != nil && len(interactions) > 0 {
		text, err := s.narrator.NarrateInteractions(c.Request.Context(), interactions)
		if err != nil {
			s.log.WithError(err).Warn("Interaction narration failed")
		} else {
			resp.Narration = text
		}
	}

	s.respondCached(c, digest, resp)
}

// handleContraindications checks one medication against patient conditions.
func (s *Server) handleContraindications(c *gin.Context) {
	var req contraindicationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if req.Medication.GenericName == "" && req.Medication.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "medication name or generic_name is required"})
		return
	}

	hits := s.engine.CheckContraindications(req.Medication, req.Conditions)
	if hits == nil {
		hits = []domain.ContraindicationHit{}
	}

	c.JSON(http.StatusOK, contraindicationsResponse{
		Medication: req.Medication.DisplayLabel(),
		Hits:       hits,
		Count:      len(hits),
	})
}

// handleCatalogMedications lists the medication rules the engine evaluates with.
func (s *Server) handleCatalogMedications(c *gin.Context) {
	rules := s.engine.Catalog().MedicationRules()
	c.JSON(http.StatusOK, gin.H{
		"count":       len(rules),
		"medications": rules,
	})
}

// handleGetAssessment returns one stored assessment by ID.
func (s *Server) handleGetAssessment(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assessment history is not enabled"})
		return
	}

	record, err := s.repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "assessment not found"})
			return
		}
		s.log.WithError(err).Error("Failed to load assessment")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load assessment"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// handleListPatientAssessments returns a patient's stored assessments, newest first.
func (s *Server) handleListPatientAssessments(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assessment history is not enabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := s.repo.ListByPatient(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		s.log.WithError(err).Error("Failed to list assessments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(records),
		"assessments": records,
	})
}

// handleAssessmentStats returns stored-assessment counts grouped by risk level.
func (s *Server) handleAssessmentStats(c *gin.Context) {
	if s.repo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "assessment history is not enabled"})
		return
	}

	counts, err := s.repo.CountByLevel(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("Failed to count assessments")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count assessments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"by_level": counts})
}

// handleSaveFeedback stores user feedback about an interaction alert.
func (s *Server) handleSaveFeedback(c *gin.Context) {
	if s.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback store is not enabled"})
		return
	}

	var fb feedback.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if fb.RuleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rule_id is required"})
		return
	}

	if err := s.feedback.Save(c.Request.Context(), &fb); err != nil {
		s.log.WithError(err).Error("Failed to save feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save feedback"})
		return
	}

	c.JSON(http.StatusCreated, fb)
}

// handleListFeedback lists stored feedback with pagination.
func (s *Server) handleListFeedback(c *gin.Context) {
	if s.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback store is not enabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := s.feedback.List(c.Request.Context(), limit, offset)
	if err != nil {
		s.log.WithError(err).Error("Failed to list feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list feedback"})
		return
	}
	total, err := s.feedback.Count(c.Request.Context())
	if err != nil {
		s.log.WithError(err).Error("Failed to count feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count feedback"})
		return
	}
	if list == nil {
		list = []*feedback.Feedback{}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":    total,
		"feedback": list,
	})
}

// handleExportFeedback streams all feedback as JSON.
func (s *Server) handleExportFeedback(c *gin.Context) {
	if s.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback store is not enabled"})
		return
	}

	c.Header("Content-Type", "application/json")
	c.Header("Content-Disposition", `attachment; filename="feedback-export.json"`)
	if err := s.feedback.ExportJSON(c.Request.Context(), c.Writer); err != nil {
		s.log.WithError(err).Error("Failed to export feedback")
	}
}

// handleDeleteFeedback removes one feedback entry.
func (s *Server) handleDeleteFeedback(c *gin.Context) {
	if s.feedback == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feedback store is not enabled"})
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback id"})
		return
	}

	if err := s.feedback.Delete(c.Request.Context(), id); err != nil {
		s.log.WithError(err).Error("Failed to delete feedback")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete feedback"})
		return
	}

	c.Status(http.StatusNoContent)
}

// requestDigest produces the content hash used for result caching and
// stored-record correlation. Identical requests always produce identical
// digests, so replays are byte-identical.
func (s *Server) requestDigest(c *gin.Context, kind string, req interface{}) (string, bool) {
	canonical, err := json.Marshal(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return "", false
	}
	return cache.AssessmentDigest(append([]byte(kind+":"), canonical...)), true
}

// persistAssessment records an evaluation when history is enabled. Failures
// are logged and swallowed; evaluation results never depend on storage.
func (s *Server) persistAssessment(c *gin.Context, kind domain.AssessmentKind, patientID, digest, level string, result interface{}) string {
	if s.repo == nil {
		return ""
	}

	payload, err := json.Marshal(result)
	if err != nil {
		s.log.WithError(err).Warn("Failed to marshal assessment result")
		return ""
	}

	record := &domain.AssessmentRecord{
		Kind:          kind,
		PatientID:     patientID,
		RequestDigest: digest,
		RiskLevel:     level,
		Result:        payload,
	}
	if err := s.repo.Create(c.Request.Context(), record); err != nil {
		s.log.WithError(err).Warn("Failed to persist assessment")
		return ""
	}
	return record.ID
}

// respondCached writes the response and caches the exact bytes for replay.
func (s *Server) respondCached(c *gin.Context, digest string, resp interface{}) {
	body, err := json.Marshal(resp)
	if err != nil {
		s.log.WithError(err).Error("Failed to marshal response")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to marshal response"})
		return
	}
	s.results.Add(digest, body)
	c.Data(http.StatusOK, "application/json", body)
}

// highestSeverity returns the most severe detected severity, or "" when
// nothing fired.
func highestSeverity(interactions []domain.DetectedInteraction) string {
	rank := func(s domain.InteractionSeverity) int {
		switch s {
		case domain.MAJOR:
			return 3
		case domain.MODERATE:
			return 2
		case domain.MINOR:
			return 1
		default:
			return 0
		}
	}

	best := ""
	bestRank := 0
	for _, in := range interactions {
		if r := rank(in.Severity); r > bestRank {
			bestRank = r
			best = in.Severity.String()
		}
	}
	return best
}
