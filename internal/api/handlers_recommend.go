// Welmap - Welfare Benefits Recommendation Platform
// Copyright 2026 Welmap Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/welmap/welmap

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/welmap/welmap/internal/database"
	"github.com/welmap/welmap/internal/models"
	"github.com/welmap/welmap/internal/validation"
)

// recommendationResponse is the payload for survey submission and
// recommendation retrieval.
type recommendationResponse struct {
	SurveyID        string                        `json:"surveyId"`
	Recommendations []models.RecommendationResult `json:"recommendations"`
	Message         string                        `json:"message"`
}

func recommendationMessage(count int) string {
	return fmt.Sprintf("%d개의 맞춤 복지 정보를 찾았습니다.", count)
}

// handleSubmitSurvey stores a survey and returns its recommendations.
//
//	@Summary	Submit a caregiving survey and get welfare recommendations
//	@Tags		recommendations
//	@Accept		json
//	@Produce	json
//	@Param		survey	body		models.Survey	true	"Survey answers"
//	@Success	201		{object}	models.APIResponse
//	@Failure	400		{object}	models.APIResponse
//	@Router		/api/v1/recommendations/survey [post]
func (rt *Router) handleSubmitSurvey(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var survey models.Survey
	if err := json.NewDecoder(r.Body).Decode(&survey); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest,
			"request body is not valid JSON", err)
		return
	}

	if err := validation.ValidateStruct(&survey); err != nil {
		respondError(w, http.StatusBadRequest, codeValidationError, err.Error(), nil)
		return
	}

	ctx := r.Context()
	if err := rt.store.InsertSurvey(ctx, &survey); err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError,
			"failed to store survey", err)
		return
	}

	recommendations, err := rt.recommender.RecommendForSurvey(ctx, &survey)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to compute recommendations", err)
		return
	}

	respondSuccess(w, http.StatusCreated, recommendationResponse{
		SurveyID:        survey.ID,
		Recommendations: recommendations,
		Message:         recommendationMessage(len(recommendations)),
	}, started)
}

// handleGetRecommendations recomputes recommendations for a stored survey.
//
//	@Summary	Get recommendations for an existing survey
//	@Tags		recommendations
//	@Produce	json
//	@Param		surveyID	path		string	true	"Survey ID"
//	@Success	200			{object}	models.APIResponse
//	@Failure	404			{object}	models.APIResponse
//	@Router		/api/v1/recommendations/survey/{surveyID} [get]
func (rt *Router) handleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	surveyID := chi.URLParam(r, "surveyID")

	recommendations, err := rt.recommender.Recommend(r.Context(), surveyID)
	if err != nil {
		if database.IsNotFound(err) {
			respondError(w, http.StatusNotFound, codeNotFound,
				"survey not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternalError,
			"failed to compute recommendations", err)
		return
	}

	respondSuccess(w, http.StatusOK, recommendationResponse{
		SurveyID:        surveyID,
		Recommendations: recommendations,
		Message:         recommendationMessage(len(recommendations)),
	}, started)
}

// handleSurveyHistory lists a user's past surveys, newest first.
//
//	@Summary	List a user's survey history
//	@Tags		recommendations
//	@Produce	json
//	@Param		userID	path		string	true	"User ID"
//	@Success	200		{object}	models.APIResponse
//	@Router		/api/v1/recommendations/user/{userID}/history [get]
func (rt *Router) handleSurveyHistory(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	userID := chi.URLParam(r, "userID")

	surveys, err := rt.store.ListSurveysByUser(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, codeDatabaseError,
			"failed to load survey history", err)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"userId":  userID,
		"surveys": surveys,
		"count":   len(surveys),
	}, started)
}
