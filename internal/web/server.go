// Package web serves the chat UI and routes inbound messages to the
// booking engine or the menu answerer.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/example/bellaroma/internal/intent"
	"go.uber.org/zap"
)

//go:embed templates/*.html static/*
var fs embed.FS

const emptyMessageReply = "🍕 Please type a message! I'm here to help with our menu and reservations."

// BookingEngine answers reservation-related messages.
type BookingEngine interface {
	HandleMessage(message string) string
}

// MenuEngine answers menu questions.
type MenuEngine interface {
	Query(ctx context.Context, question string) string
}

type Server struct {
	Booking BookingEngine
	Menu    MenuEngine

	Restaurant     string
	AllowedOrigins []string
	Log            *zap.Logger
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/static/", http.FileServer(http.FS(fs)))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/chat", s.handleChat)
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", s.handleHome)

	return mux
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	t, err := template.ParseFS(fs, "templates/index.html")
	if err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.Execute(w, struct{ Restaurant string }{Restaurant: s.Restaurant}); err != nil {
		s.logger().Error("render home failed", zap.Error(err))
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	reply := s.reply(r.Context(), req.Message)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(chatResponse{Response: reply}); err != nil {
		s.logger().Error("write chat response failed", zap.Error(err))
	}
}

// reply routes one message: booking keywords go to the booking engine,
// everything else to the menu answerer.
func (s *Server) reply(ctx context.Context, message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return emptyMessageReply
	}
	if intent.IsBooking(message) {
		return s.Booking.HandleMessage(message)
	}
	return s.Menu.Query(ctx, message)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":     "healthy",
		"restaurant": s.Restaurant,
		"engines": map[string]bool{
			"booking": s.Booking != nil,
			"menu":    s.Menu != nil,
		},
	})
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully.
func Start(ctx context.Context, addr string, h http.Handler, log *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if log != nil {
		log.Info("listening", zap.String("addr", addr))
	}
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
