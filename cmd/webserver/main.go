package main

import (
	"encoding/gob"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"studyquiz"
)

const (
	sessionName    = "studyquiz"
	sessionQuizKey = "quiz"
	maxUploadBytes = 10 << 20
)

type Server struct {
	engine    *studyquiz.Engine
	store     *sessions.CookieStore
	templates map[string]*template.Template
}

func init() {
	gob.Register(studyquiz.Quiz{})
	gob.Register(studyquiz.Question{})
}

func main() {
	configFile := flag.String("config", "webserver.yaml", "Config file (optional)")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	studyquiz.SetVerbose(cfg.Verbose)

	templates, err := loadTemplates(cfg.TemplateDir)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	server := &Server{
		engine:    studyquiz.NewEngine(cfg.Engine),
		store:     sessions.NewCookieStore([]byte(cfg.SessionSecret)),
		templates: templates,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/", server.handleInput)
	r.Post("/generate", server.handleGenerate)
	r.Post("/submit", server.handleSubmit)

	log.Printf("Starting server on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}

func loadTemplates(dir string) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)
	for _, name := range []string{"input", "quiz", "results"} {
		t, err := template.ParseFiles(
			filepath.Join(dir, "base.html"),
			filepath.Join(dir, name+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}

func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates[name].ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Template error in %s: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	s.render(w, "input", nil)
}

// quizView is what the quiz page needs: question prompts and choices,
// never the correct indexes.
type quizView struct {
	Questions []questionView
}

type questionView struct {
	Number  int
	Field   string
	Prompt  string
	Choices []string
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.render(w, "input", map[string]interface{}{"Error": "Could not read the submitted form."})
		return
	}

	req := studyquiz.GenerationRequest{
		PastedText:   r.FormValue("material"),
		NumQuestions: parseCount(r.FormValue("num_questions")),
	}

	if file, header, err := r.FormFile("document"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			s.render(w, "input", map[string]interface{}{"Error": "Could not read the uploaded file."})
			return
		}
		req.Filename = header.Filename
		req.FileData = data
	}

	quiz, err := s.engine.Generate(r.Context(), req)
	if err != nil {
		msg := studyquiz.UserMessage(err)
		if msg == "" {
			log.Printf("Unexpected generation error: %v", err)
			msg = "Quiz generation failed. Please try again."
		}
		s.render(w, "input", map[string]interface{}{"Error": msg})
		return
	}

	session, _ := s.store.Get(r, sessionName)
	session.Values[sessionQuizKey] = *quiz
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session: %v", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}

	s.render(w, "quiz", viewForQuiz(quiz))
}

func viewForQuiz(quiz *studyquiz.Quiz) quizView {
	view := quizView{Questions: make([]questionView, len(quiz.Questions))}
	for i, q := range quiz.Questions {
		view.Questions[i] = questionView{
			Number:  i + 1,
			Field:   fmt.Sprintf("q_%d", i),
			Prompt:  q.Prompt,
			Choices: q.Choices,
		}
	}
	return view
}

// resultRow is one graded question on the results page.
type resultRow struct {
	Number        int
	Prompt        string
	Choices       []string
	UserAnswer    int
	CorrectAnswer int
	Correct       bool
	Answered      bool
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	session, _ := s.store.Get(r, sessionName)
	stored, ok := session.Values[sessionQuizKey].(studyquiz.Quiz)
	if !ok || len(stored.Questions) == 0 {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	submitted := make(map[int]string, len(stored.Questions))
	for i := range stored.Questions {
		submitted[i] = r.FormValue(fmt.Sprintf("q_%d", i))
	}

	result := studyquiz.Grade(&stored, submitted)

	rows := make([]resultRow, len(stored.Questions))
	for i, q := range stored.Questions {
		rows[i] = resultRow{
			Number:        i + 1,
			Prompt:        q.Prompt,
			Choices:       q.Choices,
			UserAnswer:    result.UserAnswers[i],
			CorrectAnswer: q.CorrectChoice,
			Correct:       result.UserAnswers[i] == q.CorrectChoice,
			Answered:      result.UserAnswers[i] != studyquiz.Unanswered,
		}
	}

	s.render(w, "results", map[string]interface{}{
		"Rows":    rows,
		"Correct": result.CorrectCount,
		"Total":   result.Total,
		"Score":   result.ScorePercent,
	})
}

// parseCount mirrors the original form handling: junk defaults to 5,
// then the engine clamp applies.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 5
	}
	return n
}
