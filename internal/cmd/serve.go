// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-questbank/internal/bank"
	"github.com/mtreilly/arc-questbank/internal/config"
)

func newServeCmd(cfg *config.Config, session *bank.Session) *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the question bank as a JSON API",
		Long: `Start an HTTP server exposing the merged, filterable question list
and the tag/note mutation endpoints for a frontend to consume.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := fmt.Sprintf("%s:%d", bind, port)
			srv := &apiServer{session: session, pageSize: cfg.PageSize, logger: slog.Default()}

			mux := http.NewServeMux()
			mux.HandleFunc("GET /questions", srv.listQuestions)
			mux.HandleFunc("GET /questions/{id}", srv.getQuestion)
			mux.HandleFunc("POST /questions/{id}/tags", srv.addTag)
			mux.HandleFunc("DELETE /questions/{id}/tags/{tag}", srv.removeTag)
			mux.HandleFunc("PUT /questions/{id}/note", srv.setNote)
			mux.HandleFunc("GET /tags", srv.listTags)
			mux.HandleFunc("GET /health", srv.health)

			fmt.Printf("Starting arc-questbank server on http://%s\n", addr)
			fmt.Println("Press Ctrl+C to stop")

			return http.ListenAndServe(addr, srv.withAccessLog(withCORS(mux)))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to serve on")
	cmd.Flags().StringVarP(&bind, "bind", "b", "127.0.0.1", "Address to bind to")

	return cmd
}

type apiServer struct {
	session  *bank.Session
	pageSize int
	logger   *slog.Logger
}

// withCORS adds CORS headers for frontend development.
func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		h.ServeHTTP(w, r)
	})
}

func (s *apiServer) withAccessLog(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		h.ServeHTTP(w, r)
		s.logger.Info("request", "id", reqID, "method", r.Method, "path", r.URL.Path)
	})
}

func (s *apiServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *apiServer) listQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	pageSize := s.pageSize
	if v := q.Get("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || !config.ValidPageSize(n) {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("page_size must be one of %v", config.PageSizeOptions))
			return
		}
		pageSize = n
	}

	subjects, err := parseSubjects(q["subject"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := bank.NewView(pageSize)
	view.SetSubjects(subjects...)
	view.SetDifficulties(parseDifficulties(q["difficulty"])...)
	view.SetTags(q["tag"]...)

	questions := s.session.Questions()
	page := view.Materialize(questions)

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || (n > 1 && !view.SetPage(n)) {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("page out of range (1-%d)", page.TotalPages))
			return
		}
		if n > 1 {
			page = view.Materialize(questions)
		}
	}

	writeJSON(w, http.StatusOK, page)
}

func (s *apiServer) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := s.session.Question(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type addTagRequest struct {
	Tag string `json:"tag"`
}

func (s *apiServer) addTag(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.session.Question(id); !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	var req addTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Tag == "" {
		writeError(w, http.StatusBadRequest, "tag is required")
		return
	}

	s.session.AddTag(id, req.Tag)
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) removeTag(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.session.Question(id); !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	s.session.RemoveTag(id, r.PathValue("tag"))
	w.WriteHeader(http.StatusNoContent)
}

type setNoteRequest struct {
	Note string `json:"note"`
}

func (s *apiServer) setNote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.session.Question(id); !ok {
		writeError(w, http.StatusNotFound, "question not found")
		return
	}

	var req setNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.session.SetNote(id, req.Note)
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) listTags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tags":       s.session.TagCounts(),
		"vocabulary": s.session.Vocabulary(),
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
