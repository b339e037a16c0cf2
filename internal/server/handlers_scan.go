package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobscan/internal/db"
	"github.com/jonathan/jobscan/internal/ingest"
	"github.com/jonathan/jobscan/internal/match"
	"github.com/jonathan/jobscan/internal/pipeline"
	"github.com/jonathan/jobscan/internal/server/middleware"
	"github.com/jonathan/jobscan/internal/types"
)

// extractResponse is a scan outcome plus the ID of the persisted record
// when the caller asked to save it.
type extractResponse struct {
	pipeline.ScanResult
	ScanID *uuid.UUID `json:"scan_id,omitempty"`
}

// matchResponse is a match outcome plus the persisted record ID.
type matchResponse struct {
	match.BucketedResult
	ScanID *uuid.UUID `json:"scan_id,omitempty"`
}

// handleExtract scans job posting content and returns the structured
// requirements. With a valid bearer token and "save": true the scan is
// persisted.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobText, confidence, tag, err := s.resolveJobText(r.Context(), &req)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	result := s.scanner.ScanText(jobText)
	result.Confidence = confidence
	result.SourceTag = tag

	response := extractResponse{ScanResult: result}
	if req.Save {
		userID := s.optionalUserID(r)
		if userID == uuid.Nil {
			s.errorResponse(w, http.StatusUnauthorized, "saving a scan requires authentication")
			return
		}
		scan, err := s.store.SaveScan(r.Context(), &db.ScanCreateInput{
			UserID:       &userID,
			JobURL:       req.URL,
			SourceTag:    result.SourceTag,
			Confidence:   result.Confidence,
			Requirements: result.Requirements,
		})
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		response.ScanID = &scan.ID
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// handleMatch scores a resume against job posting content. The resume comes
// from the request body, or from the caller's saved resume when omitted.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req types.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	userID := s.optionalUserID(r)

	resume := req.Resume
	if resume == "" {
		if userID == uuid.Nil {
			s.errorResponse(w, http.StatusUnauthorized, "provide resume text or authenticate to use your saved resume")
			return
		}
		saved, err := s.store.GetResume(r.Context(), userID)
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		if saved == nil {
			s.errorResponse(w, http.StatusNotFound, "no saved resume")
			return
		}
		resume = saved.Body
	}

	jobText, confidence, tag, err := s.resolveJobText(r.Context(), &req.ExtractRequest)
	if err != nil {
		s.errorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	source := s.scanner.RequirementsSource()
	if req.Source == "mined" {
		source = s.scanner.MiningSource()
	}
	result := s.scanner.MatchResume(resume, jobText, source)

	response := matchResponse{BucketedResult: result}
	if req.Save {
		if userID == uuid.Nil {
			s.errorResponse(w, http.StatusUnauthorized, "saving a scan requires authentication")
			return
		}
		scan, err := s.store.SaveScan(r.Context(), &db.ScanCreateInput{
			UserID:      &userID,
			JobURL:      req.URL,
			SourceTag:   tag,
			Confidence:  confidence,
			Score:       &result.Score,
			MatchResult: result,
		})
		if err != nil {
			s.errorResponse(w, http.StatusInternalServerError, err.Error())
			return
		}
		response.ScanID = &scan.ID
	}

	s.jsonResponse(w, http.StatusOK, response)
}

// resolveJobText turns whichever content input the request carries into
// plain job text. A sufficiently long manual selection overrides detection.
func (s *Server) resolveJobText(ctx context.Context, req *types.ExtractRequest) (text string, confidence int, tag string, err error) {
	switch {
	case req.Text != "":
		return pipeline.ResolveText(req.Text, req.Selection), 0, "", nil
	case req.HTML != "":
		if pipeline.ResolveText("", req.Selection) != "" {
			return req.Selection, 0, "selection", nil
		}
		return s.scanner.DetectText(req.HTML)
	default:
		if s.fetcher != nil {
			cached, err := s.fetcher.Fetch(ctx, req.URL)
			if err != nil {
				return "", 0, "", err
			}
			tag := "url"
			if cached.FromCache {
				tag = "url-cache"
			}
			return pipeline.ResolveText(ingest.CleanText(cached.Text), req.Selection), 0, tag, nil
		}
		fetched, _, err := ingest.FromURL(ctx, req.URL, false, false)
		if err != nil {
			return "", 0, "", err
		}
		return pipeline.ResolveText(fetched, req.Selection), 0, "url", nil
	}
}

// handleListScans returns the caller's scan history, newest first.
func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	scans, err := s.store.ListScans(r.Context(), db.ScanFilters{UserID: userID})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if scans == nil {
		scans = []db.Scan{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"scans": scans})
}

// handleGetScan returns one of the caller's scans by ID.
func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	scan, ok := s.ownedScan(w, r, userID)
	if !ok {
		return
	}

	s.jsonResponse(w, http.StatusOK, scan)
}

// handleDeleteScan deletes one of the caller's scans.
func (s *Server) handleDeleteScan(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	scan, ok := s.ownedScan(w, r, userID)
	if !ok {
		return
	}

	if err := s.store.DeleteScan(r.Context(), scan.ID); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"message": "scan deleted"})
}

// ownedScan loads the scan named in the path and verifies the caller owns
// it. Writes the error response and returns ok=false otherwise. Scans owned
// by other users read as not found.
func (s *Server) ownedScan(w http.ResponseWriter, r *http.Request, userID uuid.UUID) (*db.Scan, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid scan ID")
		return nil, false
	}

	scan, err := s.store.GetScan(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if scan == nil || scan.UserID == nil || *scan.UserID != userID {
		s.errorResponse(w, http.StatusNotFound, "scan not found")
		return nil, false
	}

	return scan, true
}
