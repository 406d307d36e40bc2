package server

import (
	"errors"
	"net/http"

	"github.com/at-ishikawa/palabra/internal/assets"
	"github.com/at-ishikawa/palabra/internal/drill"
	"github.com/at-ishikawa/palabra/internal/lesson"
	"github.com/at-ishikawa/palabra/internal/progress"
)

const (
	messageCorrect         = "¡Correcto!"
	messageIncorrect       = "Incorrecto"
	messageNoWordSelected  = "No word selected"
	messageNotLoaded       = "Dictionary not loaded"
	messageInvalidWord     = "Invalid word or dictionary not loaded"
	messageWordNotFound    = "Word not found in dictionary"
	messageLessonNotFound  = "Lesson not found"
	messageInvalidRequest  = "Invalid request body"
	messageSessionNotSaved = "Session could not be saved"
)

type checkResponse struct {
	Status              string `json:"status"`
	Message             string `json:"message"`
	UserAnswer          string `json:"user_answer"`
	NewWord             string `json:"new_word,omitempty"`
	CorrectTranslations string `json:"correct_translations,omitempty"`
}

type getAnswerRequest struct {
	Word string `json:"word"`
}

type getAnswerResponse struct {
	Success     bool   `json:"success"`
	Translation string `json:"translation,omitempty"`
	Error       string `json:"error,omitempty"`
}

type newWordResponse struct {
	Status  string `json:"status"`
	NewWord string `json:"new_word"`
}

type helpResponse struct {
	Status       string `json:"status"`
	Word         string `json:"word"`
	Definition   string `json:"definition"`
	Translations string `json:"translations"`
}

type lessonsResponse struct {
	Status   string          `json:"status"`
	Lessons  []lesson.Lesson `json:"lessons"`
	Selected string          `json:"selected"`
}

type selectLessonRequest struct {
	LessonID string `json:"lesson_id" validate:"required"`
}

type selectLessonResponse struct {
	Status   string `json:"status"`
	LessonID string `json:"lesson_id"`
	NewWord  string `json:"new_word"`
}

type statsResponse struct {
	Status   string           `json:"status"`
	LessonID string           `json:"lesson_id"`
	Session  sessionStats     `json:"session"`
	Progress progress.Summary `json:"progress"`
}

type sessionStats struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	word, err := s.service.NewWord(r.Context(), session)
	if err != nil {
		s.logger.Error("failed to pick a word", "lesson", session.LessonID, "error", err)
		http.Error(w, "Error: "+messageNotLoaded, http.StatusInternalServerError)
		return
	}
	if err := s.saveSession(r.Context(), session); err != nil {
		http.Error(w, messageSessionNotSaved, http.StatusInternalServerError)
		return
	}

	page := assets.IndexPage{Word: word, LessonID: session.LessonID}
	lessons, err := s.lessons.List()
	if err != nil {
		s.logger.Warn("failed to list lessons", "error", err)
	}
	for _, l := range lessons {
		page.Lessons = append(page.Lessons, assets.IndexLesson{ID: l.ID, Name: l.Name})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, page); err != nil {
		s.logger.Error("failed to render the page", "error", err)
	}
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, messageInvalidRequest)
		return
	}

	result, err := s.service.Check(r.Context(), session, r.PostFormValue("translation"))
	if errors.Is(err, drill.ErrNoWordSelected) {
		respondWithError(w, http.StatusOK, messageNoWordSelected)
		return
	}
	if err != nil {
		s.logger.Error("failed to check an answer", "lesson", session.LessonID, "error", err)
		respondWithError(w, http.StatusInternalServerError, messageNotLoaded)
		return
	}
	if err := s.saveSession(r.Context(), session); err != nil {
		respondWithError(w, http.StatusInternalServerError, messageSessionNotSaved)
		return
	}

	if result.Correct {
		respondWithJSON(w, http.StatusOK, checkResponse{
			Status:     "correct",
			Message:    messageCorrect,
			UserAnswer: result.UserAnswer,
			NewWord:    result.NewWord,
		})
		return
	}
	respondWithJSON(w, http.StatusOK, checkResponse{
		Status:              "incorrect",
		Message:             messageIncorrect,
		UserAnswer:          result.UserAnswer,
		CorrectTranslations: result.Translations,
	})
}

func (s *Server) getAnswer(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	var req getAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, getAnswerResponse{Error: messageInvalidRequest})
		return
	}

	translation, err := s.service.Answer(r.Context(), session, req.Word)
	switch {
	case errors.Is(err, drill.ErrInvalidWord):
		respondWithJSON(w, http.StatusOK, getAnswerResponse{Error: messageInvalidWord})
	case errors.Is(err, drill.ErrWordNotFound):
		respondWithJSON(w, http.StatusOK, getAnswerResponse{Error: messageWordNotFound})
	case err != nil:
		s.logger.Error("failed to look up an answer", "lesson", session.LessonID, "error", err)
		respondWithJSON(w, http.StatusInternalServerError, getAnswerResponse{Error: messageNotLoaded})
	default:
		respondWithJSON(w, http.StatusOK, getAnswerResponse{Success: true, Translation: translation})
	}
}

func (s *Server) newWord(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	word, err := s.service.NewWord(r.Context(), session)
	if err != nil {
		s.logger.Error("failed to pick a word", "lesson", session.LessonID, "error", err)
		respondWithError(w, http.StatusOK, messageNotLoaded)
		return
	}
	if err := s.saveSession(r.Context(), session); err != nil {
		respondWithError(w, http.StatusInternalServerError, messageSessionNotSaved)
		return
	}
	respondWithJSON(w, http.StatusOK, newWordResponse{Status: "success", NewWord: word})
}

func (s *Server) help(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	help, err := s.service.Help(r.Context(), session)
	if errors.Is(err, drill.ErrNoWordSelected) {
		respondWithError(w, http.StatusOK, messageNoWordSelected)
		return
	}
	if err != nil {
		s.logger.Error("failed to show help", "lesson", session.LessonID, "error", err)
		respondWithError(w, http.StatusInternalServerError, messageNotLoaded)
		return
	}
	if err := s.saveSession(r.Context(), session); err != nil {
		respondWithError(w, http.StatusInternalServerError, messageSessionNotSaved)
		return
	}
	respondWithJSON(w, http.StatusOK, helpResponse{
		Status:       "success",
		Word:         help.Word,
		Definition:   help.Definition,
		Translations: help.Translations,
	})
}

func (s *Server) listLessons(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	lessons, err := s.lessons.List()
	if err != nil {
		s.logger.Error("failed to list lessons", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Lessons could not be listed")
		return
	}
	respondWithJSON(w, http.StatusOK, lessonsResponse{
		Status:   "success",
		Lessons:  lessons,
		Selected: session.LessonID,
	})
}

func (s *Server) selectLesson(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	var req selectLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, messageInvalidRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "lesson_id is required")
		return
	}

	word, err := s.service.SelectLesson(r.Context(), session, req.LessonID)
	if errors.Is(err, lesson.ErrLessonNotFound) {
		respondWithError(w, http.StatusNotFound, messageLessonNotFound)
		return
	}
	if err != nil {
		s.logger.Error("failed to select a lesson", "lesson", req.LessonID, "error", err)
		respondWithError(w, http.StatusInternalServerError, messageNotLoaded)
		return
	}
	if err := s.saveSession(r.Context(), session); err != nil {
		respondWithError(w, http.StatusInternalServerError, messageSessionNotSaved)
		return
	}
	respondWithJSON(w, http.StatusOK, selectLessonResponse{
		Status:   "success",
		LessonID: session.LessonID,
		NewWord:  word,
	})
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	session := sessionFrom(r.Context())
	summary, err := s.service.Stats(r.Context(), session)
	if err != nil {
		s.logger.Error("failed to summarize progress", "lesson", session.LessonID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Progress could not be loaded")
		return
	}
	respondWithJSON(w, http.StatusOK, statsResponse{
		Status:   "success",
		LessonID: session.LessonID,
		Session:  sessionStats{Answered: session.Answered, Correct: session.Correct},
		Progress: summary,
	})
}
